package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duccv/shop-admin/config"
	"go.uber.org/zap"
)

type DatabaseType string

const (
	PostgreSQL DatabaseType = "postgres"
	MySQL      DatabaseType = "mysql"
)

// Database is a relational store with separate read and write handles.
// Reader and Writer may return the same pool when no replica is configured.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error
	Reader() *sql.DB
	Writer() *sql.DB
	Type() DatabaseType
	Dialect() Dialect
	Host() string
	Name() string
	HealthCheck(ctx context.Context) map[string]error
}

// DatabaseFactory creates and tracks named database instances.
type DatabaseFactory struct {
	databases map[string]Database
}

func NewDatabaseFactory() *DatabaseFactory {
	return &DatabaseFactory{
		databases: make(map[string]Database),
	}
}

// NewDatabase returns an unconnected instance for cfg.Type.
func NewDatabase(cfg *config.DatabaseConfig) (Database, error) {
	switch DatabaseType(cfg.Type) {
	case PostgreSQL:
		return NewPostgresDB(&cfg.PostgresConfig), nil
	case MySQL:
		return NewMySQLDB(&cfg.MySQLConfig), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

// CreateDatabase builds, connects and registers a database under name.
func (f *DatabaseFactory) CreateDatabase(
	ctx context.Context,
	name string,
	cfg *config.DatabaseConfig,
) (Database, error) {
	db, err := NewDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}

	f.databases[name] = db
	return db, nil
}

// GetDatabase returns the instance registered under name.
func (f *DatabaseFactory) GetDatabase(name string) (Database, error) {
	db, exists := f.databases[name]
	if !exists {
		return nil, fmt.Errorf("database '%s' not found", name)
	}
	return db, nil
}

// CloseAll closes every registered connection.
func (f *DatabaseFactory) CloseAll() {
	for name, db := range f.databases {
		if err := db.Close(); err != nil {
			zap.L().Error("Error closing database", zap.String("name", name), zap.Error(err))
		}
	}
	f.databases = make(map[string]Database)
}

// HealthCheck checks every registered connection.
func (f *DatabaseFactory) HealthCheck(ctx context.Context) map[string]map[string]error {
	result := make(map[string]map[string]error, len(f.databases))
	for name, db := range f.databases {
		result[name] = db.HealthCheck(ctx)
	}
	return result
}

// Healthy reports whether every entry of a HealthCheck result is nil.
func Healthy(checks map[string]error) bool {
	for _, err := range checks {
		if err != nil {
			return false
		}
	}
	return true
}
