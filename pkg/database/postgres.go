package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/duccv/shop-admin/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

type PostgresDB struct {
	config    *config.PostgresConfig
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
	reader    *sql.DB
	writer    *sql.DB
	logger    *zap.Logger
}

func NewPostgresDB(config *config.PostgresConfig) *PostgresDB {
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 30
	}
	return &PostgresDB{
		config: config,
		logger: zap.L().With(zap.String("component", "postgres")),
	}
}

func (p *PostgresDB) Connect(ctx context.Context) error {
	p.logger.Info("Starting PostgreSQL connection",
		zap.String("host", p.config.Host),
		zap.Int("port", p.config.Port),
		zap.String("database", p.config.Database),
		zap.String("username", p.config.Username))

	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.config.ConnectTimeout)*time.Second)
	defer cancel()

	writeHost, writePort := p.writeAddr()
	writePool, err := p.openPool(ctx, writeHost, writePort)
	if err != nil {
		return fmt.Errorf("write pool: %w", err)
	}
	p.writePool = writePool

	readHost, readPort := p.readAddr()
	if readHost == writeHost && readPort == writePort {
		p.readPool = writePool
	} else {
		readPool, err := p.openPool(ctx, readHost, readPort)
		if err != nil {
			writePool.Close()
			p.writePool = nil
			return fmt.Errorf("read pool: %w", err)
		}
		p.readPool = readPool
	}

	p.writer = stdlib.OpenDBFromPool(p.writePool)
	if p.readPool == p.writePool {
		p.reader = p.writer
	} else {
		p.reader = stdlib.OpenDBFromPool(p.readPool)
	}

	p.logger.Info("Successfully connected to PostgreSQL",
		zap.String("write_host", writeHost),
		zap.Int("write_port", writePort),
		zap.String("read_host", readHost),
		zap.Int("read_port", readPort))
	return nil
}

func (p *PostgresDB) openPool(ctx context.Context, host string, port int) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(p.buildPgxDSN(host, port))
	if err != nil {
		p.logger.Error("Failed to parse pool config",
			zap.String("host", host),
			zap.Int("port", port),
			zap.Error(err))
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	p.configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		p.logger.Error("Failed to ping pool",
			zap.String("host", host),
			zap.Int("port", port),
			zap.Error(err))
		return nil, fmt.Errorf("failed to ping %s:%d: %w", host, port, err)
	}

	p.logger.Debug("Pool created", zap.String("host", host), zap.Int("port", port))
	return pool, nil
}

func (p *PostgresDB) Ping(ctx context.Context) error {
	if p.writer == nil {
		return errors.New("postgres: not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.PingContext(ctx); err != nil {
		return fmt.Errorf("write pool ping failed: %w", err)
	}
	if p.reader != p.writer {
		if err := p.reader.PingContext(ctx); err != nil {
			return fmt.Errorf("read pool ping failed: %w", err)
		}
	}
	return nil
}

func (p *PostgresDB) Reader() *sql.DB { return p.reader }

func (p *PostgresDB) Writer() *sql.DB { return p.writer }

func (p *PostgresDB) Type() DatabaseType { return PostgreSQL }

func (p *PostgresDB) Dialect() Dialect { return PostgresDialect }

func (p *PostgresDB) Host() string {
	host, port := p.writeAddr()
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func (p *PostgresDB) Name() string { return p.config.Database }

func (p *PostgresDB) HealthCheck(ctx context.Context) map[string]error {
	result := make(map[string]error, 2)

	result["write_pool"] = pingHandle(ctx, p.writer, "write pool")
	result["read_pool"] = pingHandle(ctx, p.reader, "read pool")

	for name, err := range result {
		if err != nil {
			p.logger.Warn("PostgreSQL health check failed", zap.String("pool", name), zap.Error(err))
		}
	}
	return result
}

func (p *PostgresDB) writeAddr() (string, int) {
	if p.config.WriteHost == "" {
		return p.config.Host, p.config.Port
	}
	return p.config.WriteHost, p.config.WritePort
}

func (p *PostgresDB) readAddr() (string, int) {
	if p.config.ReadHost == "" {
		return p.writeAddr()
	}
	return p.config.ReadHost, p.config.ReadPort
}

func (p *PostgresDB) buildPgxDSN(host string, port int) string {
	sslMode := p.config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	q := url.Values{}
	q.Set("sslmode", sslMode)
	q.Set("connect_timeout", strconv.Itoa(p.config.ConnectTimeout))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.config.Username, p.config.Password),
		Host:     net.JoinHostPort(host, strconv.Itoa(port)),
		Path:     "/" + p.config.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (p *PostgresDB) Close() error {
	p.logger.Info("Closing PostgreSQL connections")

	var errs []error
	if p.reader != nil && p.reader != p.writer {
		errs = append(errs, p.reader.Close())
	}
	if p.writer != nil {
		errs = append(errs, p.writer.Close())
	}
	if p.readPool != nil && p.readPool != p.writePool {
		p.readPool.Close()
	}
	if p.writePool != nil {
		p.writePool.Close()
	}

	p.reader, p.writer, p.readPool, p.writePool = nil, nil, nil, nil
	return errors.Join(errs...)
}

func (p *PostgresDB) configurePool(config *pgxpool.Config) {
	if p.config.MaxConns != 0 {
		config.MaxConns = p.config.MaxConns
	}

	if p.config.MinConns != 0 {
		config.MinConns = p.config.MinConns
	}

	if p.config.ConnMaxIdleTime != 0 {
		config.MaxConnIdleTime = time.Duration(p.config.ConnMaxIdleTime) * time.Minute
	}

	if p.config.ConnMaxLifetime != 0 {
		config.MaxConnLifetime = time.Duration(p.config.ConnMaxLifetime) * time.Hour
	}

	if p.config.HealthCheckPeriod != 0 {
		config.HealthCheckPeriod = time.Duration(p.config.HealthCheckPeriod) * time.Minute
	}
}

func pingHandle(ctx context.Context, db *sql.DB, name string) error {
	if db == nil {
		return fmt.Errorf("%s not initialized", name)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
