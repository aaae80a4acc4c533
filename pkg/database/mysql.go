package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/duccv/shop-admin/config"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type MySQLDB struct {
	config *config.MySQLConfig
	reader *sql.DB
	writer *sql.DB
	logger *zap.Logger
}

func NewMySQLDB(config *config.MySQLConfig) *MySQLDB {
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 30
	}
	return &MySQLDB{
		config: config,
		logger: zap.L().With(zap.String("component", "mysql")),
	}
}

func (m *MySQLDB) Connect(ctx context.Context) error {
	m.logger.Info("Starting MySQL connection",
		zap.String("host", m.config.Host),
		zap.Int("port", m.config.Port),
		zap.String("database", m.config.Database),
		zap.String("username", m.config.Username))

	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.config.ConnectTimeout)*time.Second)
	defer cancel()

	writeHost, writePort := m.writeAddr()
	writer, err := m.open(ctx, writeHost, writePort)
	if err != nil {
		return fmt.Errorf("writer: %w", err)
	}
	m.writer = writer

	readHost, readPort := m.readAddr()
	if readHost == writeHost && readPort == writePort {
		m.reader = writer
	} else {
		reader, err := m.open(ctx, readHost, readPort)
		if err != nil {
			_ = writer.Close()
			m.writer = nil
			return fmt.Errorf("reader: %w", err)
		}
		m.reader = reader
	}

	m.logger.Info("Successfully connected to MySQL",
		zap.String("write_host", writeHost),
		zap.String("read_host", readHost))
	return nil
}

func (m *MySQLDB) open(ctx context.Context, host string, port int) (*sql.DB, error) {
	db, err := sql.Open("mysql", m.buildDSN(host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}

	if m.config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(m.config.MaxOpenConns)
	}
	if m.config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(m.config.MaxIdleConns)
	}
	if m.config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(m.config.ConnMaxLifetime) * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		m.logger.Error("Failed to ping MySQL",
			zap.String("host", host),
			zap.Int("port", port),
			zap.Error(err))
		return nil, fmt.Errorf("failed to ping %s:%d: %w", host, port, err)
	}
	return db, nil
}

// buildDSN formats user:pass@tcp(host:port)/db?charset=utf8mb4&parseTime=true.
func (m *MySQLDB) buildDSN(host string, port int) string {
	cfg := mysql.NewConfig()
	cfg.User = m.config.Username
	cfg.Passwd = m.config.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.DBName = m.config.Database
	cfg.ParseTime = true
	cfg.Timeout = time.Duration(m.config.ConnectTimeout) * time.Second
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func (m *MySQLDB) Ping(ctx context.Context) error {
	if m.writer == nil {
		return errors.New("mysql: not connected")
	}
	if err := pingHandle(ctx, m.writer, "writer"); err != nil {
		return err
	}
	if m.reader != m.writer {
		return pingHandle(ctx, m.reader, "reader")
	}
	return nil
}

func (m *MySQLDB) Reader() *sql.DB { return m.reader }

func (m *MySQLDB) Writer() *sql.DB { return m.writer }

func (m *MySQLDB) Type() DatabaseType { return MySQL }

func (m *MySQLDB) Dialect() Dialect { return MySQLDialect }

func (m *MySQLDB) Host() string {
	host, port := m.writeAddr()
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func (m *MySQLDB) Name() string { return m.config.Database }

func (m *MySQLDB) HealthCheck(ctx context.Context) map[string]error {
	result := map[string]error{
		"writer": pingHandle(ctx, m.writer, "writer"),
		"reader": pingHandle(ctx, m.reader, "reader"),
	}
	for name, err := range result {
		if err != nil {
			m.logger.Warn("MySQL health check failed", zap.String("handle", name), zap.Error(err))
		}
	}
	return result
}

func (m *MySQLDB) writeAddr() (string, int) {
	if m.config.WriteHost == "" {
		return m.config.Host, m.config.Port
	}
	return m.config.WriteHost, m.config.WritePort
}

func (m *MySQLDB) readAddr() (string, int) {
	if m.config.ReadHost == "" {
		return m.writeAddr()
	}
	return m.config.ReadHost, m.config.ReadPort
}

func (m *MySQLDB) Close() error {
	m.logger.Info("Closing MySQL connections")

	var errs []error
	if m.reader != nil && m.reader != m.writer {
		errs = append(errs, m.reader.Close())
	}
	if m.writer != nil {
		errs = append(errs, m.writer.Close())
	}
	m.reader, m.writer = nil, nil
	return errors.Join(errs...)
}
