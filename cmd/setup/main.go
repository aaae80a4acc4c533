// Command setup applies the schema migrations and seeds the initial admin account.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/duccv/shop-admin/config"
	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/repository"
	"github.com/duccv/shop-admin/migrations"
	"github.com/duccv/shop-admin/pkg/database"
	"github.com/duccv/shop-admin/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const setupTimeout = 2 * time.Minute

func main() {
	env := config.GetEnv()

	zapLogger := logger.GetLogger(env.LoggerConfig)
	zap.ReplaceGlobals(zapLogger)
	defer zapLogger.Sync()

	if err := setup(env); err != nil {
		fmt.Fprintf(os.Stderr, "\nDatabase setup failed: %v\n", err)
		zapLogger.Sync()
		os.Exit(1)
	}
}

func setup(env *config.Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	db, err := database.NewDatabase(&env.DatabaseConfig)
	if err != nil {
		return err
	}
	if err = db.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()
	fmt.Printf("Connected to %s at %s successfully.\n", db.Type(), db.Host())

	version, err := migrations.Up(ctx, db.Writer(), env.DatabaseConfig.Type)
	if err != nil {
		return err
	}
	fmt.Printf("Database schema is at version %d.\n", version)

	created, err := seedAdmin(ctx, repository.NewUserRepository(db), env.AuthConfig)
	if err != nil {
		return err
	}

	fmt.Println("\nDatabase setup complete!")
	if created {
		fmt.Println("You can now use the admin panel with the following credentials:")
		fmt.Printf("Email: %s\n", env.AuthConfig.AdminEmail)
		fmt.Println("Password: the configured auth.admin_password")
		fmt.Println("\nChange this password before exposing the panel outside development.")
	} else {
		fmt.Printf("Admin account %s already exists; left unchanged.\n", env.AuthConfig.AdminEmail)
	}
	return nil
}

// seedAdmin creates the admin user unless one with the configured email exists.
func seedAdmin(ctx context.Context, users repository.UserRepository, cfg config.AuthConfig) (bool, error) {
	_, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	if cfg.AdminPassword == "" {
		return false, errors.New("auth.admin_password is required to seed the admin account")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	id, err := users.Create(ctx, model.User{
		Name:         "Admin User",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
	})
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	zap.L().Info("Seeded admin account", zap.Int64("id", id), zap.String("email", cfg.AdminEmail))
	return true, nil
}
