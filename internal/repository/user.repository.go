package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/pkg/database"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	Create(ctx context.Context, u model.User) (int64, error)
}

type userRepository struct {
	db database.Database
}

func NewUserRepository(db database.Database) UserRepository {
	return &userRepository{db: db}
}

const findUserByEmailSQL = `SELECT id, name, email, password, role, last_login, created_at
FROM users WHERE email = ? LIMIT 1`

func (r *userRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var (
		u         model.User
		lastLogin sql.NullTime
	)

	row := r.db.Reader().QueryRowContext(ctx, r.db.Dialect().Rebind(findUserByEmailSQL), email)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &lastLogin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}

	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	q := r.db.Dialect().Rebind(`UPDATE users SET last_login = ? WHERE id = ?`)
	res, err := r.db.Writer().ExecContext(ctx, q, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, u model.User) (int64, error) {
	const insert = `INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`
	args := []any{u.Name, u.Email, u.PasswordHash, u.Role}

	if r.db.Type() == database.PostgreSQL {
		var id int64
		q := r.db.Dialect().Rebind(insert + ` RETURNING id`)
		if err := r.db.Writer().QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert user: %w", err)
		}
		return id, nil
	}

	res, err := r.db.Writer().ExecContext(ctx, insert, args...)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}
