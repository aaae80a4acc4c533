package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	AppConfig struct {
		Name            string `mapstructure:"name"`
		Version         string `mapstructure:"version"`
		Port            int    `mapstructure:"port"`
		Environment     string `mapstructure:"environment"`
		PathPrefix      string `mapstructure:"path_prefix"` // Optional, defaults to /api
		RequestTimeout  int    `mapstructure:"request_timeout"`
		ShutdownTimeout int    `mapstructure:"shutdown_timeout"`

		// TrustedProxies lists the proxy IPs/CIDRs whose forwarding headers are
		// believed. Empty means the client IP is always the socket peer.
		TrustedProxies []string `mapstructure:"trusted_proxies"`
	}

	LoggerConfig struct {
		Level       string `mapstructure:"level"`
		Format      string `mapstructure:"format"`
		FilePath    string `mapstructure:"filepath"`
		MaxSize     int    `mapstructure:"max_size"`
		MaxAge      int    `mapstructure:"max_age"`
		MaxBackups  int    `mapstructure:"max_backups"`
		Compress    bool   `mapstructure:"compress"`
		LocalTime   bool   `mapstructure:"localTime"`
		Environment string
	}

	// AuthConfig holds the token signing settings. Secret is never printed.
	AuthConfig struct {
		Secret        string `mapstructure:"secret"`
		TTLSeconds    int    `mapstructure:"ttl_seconds"`
		RequireExpiry bool   `mapstructure:"require_expiry"`
		AdminEmail    string `mapstructure:"admin_email"`
		AdminPassword string `mapstructure:"admin_password"`
	}

	PostgresConfig struct {
		Host              string `mapstructure:"host"`
		Port              int    `mapstructure:"port"`
		WriteHost         string `mapstructure:"write_host"`
		WritePort         int    `mapstructure:"write_port"`
		ReadHost          string `mapstructure:"read_host"`
		ReadPort          int    `mapstructure:"read_port"`
		Username          string `mapstructure:"username"`
		Password          string `mapstructure:"password"`
		Database          string `mapstructure:"database"`
		SSLMode           string `mapstructure:"sslmode"`
		ConnectTimeout    int    `mapstructure:"connect_timeout"`
		MaxConns          int32  `mapstructure:"max_conns"`
		MinConns          int32  `mapstructure:"min_conns"`
		ConnMaxLifetime   int    `mapstructure:"conn_max_lifetime"`
		ConnMaxIdleTime   int    `mapstructure:"conn_max_idle_time"`
		HealthCheckPeriod int    `mapstructure:"health_check_period"`
	}

	MySQLConfig struct {
		Host            string `mapstructure:"host"`
		Port            int    `mapstructure:"port"`
		WriteHost       string `mapstructure:"write_host"`
		WritePort       int    `mapstructure:"write_port"`
		ReadHost        string `mapstructure:"read_host"`
		ReadPort        int    `mapstructure:"read_port"`
		Username        string `mapstructure:"username"`
		Password        string `mapstructure:"password"`
		Database        string `mapstructure:"database"`
		ConnectTimeout  int    `mapstructure:"connect_timeout"`
		MaxIdleConns    int    `mapstructure:"max_idle_conns"`
		MaxOpenConns    int    `mapstructure:"max_open_conns"`
		ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	}

	DatabaseConfig struct {
		Type           string         `mapstructure:"type"`
		PostgresConfig PostgresConfig `mapstructure:"postgres"`
		MySQLConfig    MySQLConfig    `mapstructure:"mysql"`
	}

	RedisConfig struct {
		Enabled    bool   `mapstructure:"enabled"`
		Type       string `mapstructure:"type"` // NORMAL or SENTINEL
		Addrs      string `mapstructure:"addrs"`
		MasterName string `mapstructure:"master_name"`
		Password   string `mapstructure:"password"`
		DB         int    `mapstructure:"db"`
	}

	CacheConfig struct {
		Capacity     int `mapstructure:"capacity"`
		DefaultTTL   int `mapstructure:"default_ttl"`
		RedisTTL     int `mapstructure:"redis_ttl"`
		RedisTimeout int `mapstructure:"redis_timeout_ms"`
	}

	CORSConfig struct {
		Enabled          bool     `mapstructure:"enabled"`
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	}

	MetricsConfig struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	}

	GRPCConfig struct {
		Enabled             bool `mapstructure:"enabled"`
		Port                int  `mapstructure:"port"`
		HealthCheckInterval int  `mapstructure:"health_check_interval"`
	}
)

type Env struct {
	AppConfig      AppConfig      `mapstructure:"app"`
	LoggerConfig   LoggerConfig   `mapstructure:"logging"`
	AuthConfig     AuthConfig     `mapstructure:"auth"`
	DatabaseConfig DatabaseConfig `mapstructure:"database"`
	RedisConfig    RedisConfig    `mapstructure:"redis"`
	CacheConfig    CacheConfig    `mapstructure:"cache"`
	CORSConfig     CORSConfig     `mapstructure:"cors"`
	MetricsConfig  MetricsConfig  `mapstructure:"metrics"`
	GRPCConfig     GRPCConfig     `mapstructure:"grpc"`
}

var env *Env

// Load reads configuration from the YAML file at path, then overlays
// environment variables (ENV_AUTH_SECRET overrides auth.secret, and so on).
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Env, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	/*
	   AutomaticEnv checks for an environment variable any time a Get request is made:
	   the key uppercased and prefixed with the EnvPrefix, with "." replaced by "_".
	*/
	v.AutomaticEnv()
	v.SetEnvPrefix("env") // uppercased automatically
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	// Unmarshal only sees env values for keys viper already knows about.
	for _, key := range []string{"auth.secret", "database.postgres.password", "database.mysql.password", "redis.password"} {
		_ = v.BindEnv(key)
	}
	_ = v.BindEnv("app.name", "APP_NAME")

	var e Env
	if err := v.Unmarshal(&e); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	e.LoggerConfig.Environment = e.AppConfig.Environment
	if e.AppConfig.Environment == "production" {
		e.LoggerConfig.Level = "info" // Default to info level in production
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return &e, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.path_prefix", "/api")
	v.SetDefault("app.request_timeout", 5)
	v.SetDefault("app.shutdown_timeout", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.filepath", "logs/app.log")
	v.SetDefault("auth.ttl_seconds", 3600)
	v.SetDefault("auth.admin_email", "admin@example.com")
	v.SetDefault("database.type", "postgres")
	v.SetDefault("redis.type", "NORMAL")
	v.SetDefault("cache.capacity", 1000)
	v.SetDefault("cache.default_ttl", 30)
	v.SetDefault("cache.redis_ttl", 300)
	v.SetDefault("cache.redis_timeout_ms", 50)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("grpc.port", 9090)
	v.SetDefault("grpc.health_check_interval", 15)
}

// Validate reports configuration the process cannot start with.
func (e *Env) Validate() error {
	var errs []error

	if e.AuthConfig.Secret == "" {
		errs = append(errs, errors.New("auth.secret is required"))
	}
	if e.AuthConfig.TTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("auth.ttl_seconds must be positive, got %d", e.AuthConfig.TTLSeconds))
	}
	switch e.DatabaseConfig.Type {
	case "postgres", "mysql":
	default:
		errs = append(errs, fmt.Errorf("database.type %q is not supported", e.DatabaseConfig.Type))
	}

	return errors.Join(errs...)
}

// GetEnv returns the process configuration loaded from ./config/config.yaml.
func GetEnv() *Env {
	if env != nil {
		return env
	}

	loaded, err := Load("./config/config.yaml")
	if err != nil {
		log.Fatalf("Error loading config, %s", err)
	}

	printStartupConfig(loaded)
	env = loaded
	return env
}

func printStartupConfig(env *Env) {
	line := strings.Repeat("=", 40)
	fmt.Println(line)
	fmt.Println("🚀 Application Configuration")
	fmt.Println(line)

	fmt.Printf("%-15s: %s\n", "App Name", env.AppConfig.Name)
	fmt.Printf("%-15s: %s\n", "Version", env.AppConfig.Version)
	fmt.Printf("%-15s: %s\n", "Environment", env.AppConfig.Environment)
	fmt.Printf("%-15s: %d\n", "Port", env.AppConfig.Port)
	fmt.Printf("%-15s: %s\n", "Log Level", env.LoggerConfig.Level)
	fmt.Printf("%-15s: %s\n", "Database", env.DatabaseConfig.Type)
	fmt.Printf("%-15s: %ds\n", "Token TTL", env.AuthConfig.TTLSeconds)

	fmt.Println(line)
}
