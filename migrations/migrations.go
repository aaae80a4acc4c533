// Package migrations embeds the goose schema migrations for each supported engine.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed postgres/*.sql mysql/*.sql
var files embed.FS

// Source returns the migration files for dbType ("postgres" or "mysql").
func Source(dbType string) (fs.FS, goose.Dialect, error) {
	var dialect goose.Dialect
	switch dbType {
	case "postgres":
		dialect = goose.DialectPostgres
	case "mysql":
		dialect = goose.DialectMySQL
	default:
		return nil, "", fmt.Errorf("no migrations for database type %q", dbType)
	}

	sub, err := fs.Sub(files, dbType)
	if err != nil {
		return nil, "", err
	}
	return sub, dialect, nil
}

// Up applies every pending migration and returns the resulting version.
func Up(ctx context.Context, db *sql.DB, dbType string) (int64, error) {
	fsys, dialect, err := Source(dbType)
	if err != nil {
		return 0, err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	for _, r := range results {
		zap.L().Info("Applied migration",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("duration", r.Duration))
	}

	return provider.GetDBVersion(ctx)
}
