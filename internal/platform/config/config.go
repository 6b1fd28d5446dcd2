package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	SeatService    ClientConfig
	PaymentService ClientConfig
	Log            LogConfig
}

type AppConfig struct {
	Name        string
	Environment string
	// Storage selects postgres or the in-memory adapters.
	Storage string
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectAttempts int
	ConnectBackoff  time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ClientConfig configures an outbound service client. An empty BaseURL
// means the dependency is served in-process.
type ClientConfig struct {
	BaseURL             string
	Timeout             time.Duration
	MaxAttempts         int
	RetryInitial        time.Duration
	RetryMax            time.Duration
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerOpenTimeout  time.Duration
}

type LogConfig struct {
	Level       string
	Encoding    string
	Development bool
}

// Load reads .env (optional) and the environment. name and port seed the
// APP_NAME and SERVER_PORT defaults of the calling binary.
func Load(name string, port int) (*Config, error) {
	return load(".env", name, port)
}

func load(path, name string, port int) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")
	// A missing .env is fine; the environment still applies.
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v, name, port)

	cfg := bindConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, name string, port int) {
	v.SetDefault("APP_NAME", name)
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_STORAGE", StoragePostgres)

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", port)
	v.SetDefault("SERVER_READ_TIMEOUT", "5s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "5s")

	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_DBNAME", "scalable_booking")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 25)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DATABASE_CONNECT_ATTEMPTS", 10)
	v.SetDefault("DATABASE_CONNECT_BACKOFF", "2s")
	v.SetDefault("DATABASE_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CACHE_TTL", "30s")

	v.SetDefault("SEAT_SERVICE_BASE_URL", "")
	v.SetDefault("SEAT_SERVICE_TIMEOUT", "3s")
	v.SetDefault("SEAT_SERVICE_MAX_ATTEMPTS", 3)
	v.SetDefault("SEAT_SERVICE_RETRY_INITIAL", "200ms")
	v.SetDefault("SEAT_SERVICE_RETRY_MAX", "2s")
	v.SetDefault("SEAT_SERVICE_BREAKER_MIN_REQUESTS", 10)
	v.SetDefault("SEAT_SERVICE_BREAKER_FAILURE_RATIO", 0.5)
	v.SetDefault("SEAT_SERVICE_BREAKER_OPEN_TIMEOUT", "30s")

	v.SetDefault("PAYMENT_SERVICE_BASE_URL", "http://localhost:8084")
	v.SetDefault("PAYMENT_SERVICE_TIMEOUT", "5s")
	v.SetDefault("PAYMENT_SERVICE_MAX_ATTEMPTS", 1)
	v.SetDefault("PAYMENT_SERVICE_BREAKER_MIN_REQUESTS", 10)
	v.SetDefault("PAYMENT_SERVICE_BREAKER_FAILURE_RATIO", 0.5)
	v.SetDefault("PAYMENT_SERVICE_BREAKER_OPEN_TIMEOUT", "30s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")
	v.SetDefault("LOG_DEVELOPMENT", false)
}

func bindConfig(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = v.GetString("APP_ENVIRONMENT")
	cfg.App.Storage = strings.ToLower(v.GetString("APP_STORAGE"))

	cfg.Server.Host = v.GetString("SERVER_HOST")
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.ReadTimeout = v.GetDuration("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetDuration("SERVER_WRITE_TIMEOUT")
	cfg.Server.IdleTimeout = v.GetDuration("SERVER_IDLE_TIMEOUT")
	cfg.Server.ShutdownTimeout = v.GetDuration("SERVER_SHUTDOWN_TIMEOUT")

	cfg.Database.Host = v.GetString("DATABASE_HOST")
	cfg.Database.Port = v.GetInt("DATABASE_PORT")
	cfg.Database.User = v.GetString("DATABASE_USER")
	cfg.Database.Password = v.GetString("DATABASE_PASSWORD")
	cfg.Database.DBName = v.GetString("DATABASE_DBNAME")
	cfg.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	cfg.Database.MaxOpenConns = v.GetInt("DATABASE_MAX_OPEN_CONNS")
	cfg.Database.MaxIdleConns = v.GetInt("DATABASE_MAX_IDLE_CONNS")
	cfg.Database.ConnMaxLifetime = v.GetDuration("DATABASE_CONN_MAX_LIFETIME")
	cfg.Database.ConnectAttempts = v.GetInt("DATABASE_CONNECT_ATTEMPTS")
	cfg.Database.ConnectBackoff = v.GetDuration("DATABASE_CONNECT_BACKOFF")
	cfg.Database.AutoMigrate = v.GetBool("DATABASE_AUTO_MIGRATE")

	cfg.Redis.Enabled = v.GetBool("REDIS_ENABLED")
	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetInt("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.CacheTTL = v.GetDuration("REDIS_CACHE_TTL")

	cfg.SeatService = bindClient(v, "SEAT_SERVICE")
	cfg.PaymentService = bindClient(v, "PAYMENT_SERVICE")

	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.Encoding = v.GetString("LOG_ENCODING")
	cfg.Log.Development = v.GetBool("LOG_DEVELOPMENT")

	return cfg
}

func bindClient(v *viper.Viper, prefix string) ClientConfig {
	return ClientConfig{
		BaseURL:             strings.TrimSuffix(v.GetString(prefix+"_BASE_URL"), "/"),
		Timeout:             v.GetDuration(prefix + "_TIMEOUT"),
		MaxAttempts:         v.GetInt(prefix + "_MAX_ATTEMPTS"),
		RetryInitial:        v.GetDuration(prefix + "_RETRY_INITIAL"),
		RetryMax:            v.GetDuration(prefix + "_RETRY_MAX"),
		BreakerMinRequests:  v.GetUint32(prefix + "_BREAKER_MIN_REQUESTS"),
		BreakerFailureRatio: v.GetFloat64(prefix + "_BREAKER_FAILURE_RATIO"),
		BreakerOpenTimeout:  v.GetDuration(prefix + "_BREAKER_OPEN_TIMEOUT"),
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return errors.New("app name is required")
	}
	if c.App.Storage != StoragePostgres && c.App.Storage != StorageMemory {
		return fmt.Errorf("unknown storage %q", c.App.Storage)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.App.Storage == StoragePostgres && c.Database.DBName == "" {
		return errors.New("database name is required")
	}
	for name, client := range map[string]ClientConfig{"seat service": c.SeatService, "payment service": c.PaymentService} {
		if client.BreakerFailureRatio <= 0 || client.BreakerFailureRatio > 1 {
			return fmt.Errorf("%s breaker failure ratio must be in (0, 1]: %v", name, client.BreakerFailureRatio)
		}
		if client.MaxAttempts < 1 {
			return fmt.Errorf("%s max attempts must be at least 1", name)
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
