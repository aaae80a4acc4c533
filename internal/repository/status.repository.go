package repository

import (
	"context"
	"fmt"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/pkg/database"
)

type StatusRepository interface {
	Ping(ctx context.Context) error
	Tables(ctx context.Context) ([]model.TableInfo, error)
}

type statusRepository struct {
	db database.Database
}

func NewStatusRepository(db database.Database) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Tables lists the base tables of the current schema with their row counts.
func (r *statusRepository) Tables(ctx context.Context) ([]model.TableInfo, error) {
	reader := r.db.Reader()
	dialect := r.db.Dialect()

	rows, err := reader.QueryContext(ctx, dialect.ListTablesQuery())
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	tables := make([]model.TableInfo, 0, len(names))
	for _, name := range names {
		var count int64
		q := "SELECT COUNT(*) FROM " + dialect.QuoteIdent(name)
		if err := reader.QueryRowContext(ctx, q).Scan(&count); err != nil {
			return nil, fmt.Errorf("count rows in %s: %w", name, err)
		}
		tables = append(tables, model.TableInfo{Name: name, Rows: count})
	}

	return tables, nil
}
