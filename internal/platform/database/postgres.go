package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"net"
	"net/url"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/srgjo27/scalable_booking/internal/platform/config"
	"github.com/srgjo27/scalable_booking/internal/platform/resilience"
)

//go:embed schema.sql
var schema string

func DSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

// NewPostgresDB keeps pinging until the database answers or the attempts run
// out; containers often start before postgres is ready.
func NewPostgresDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	retrier := resilience.NewRetrier(resilience.RetryConfig{
		MaxAttempts:     cfg.ConnectAttempts,
		InitialInterval: cfg.ConnectBackoff,
		MaxInterval:     cfg.ConnectBackoff,
		Multiplier:      1,
	})

	res := retrier.Do(ctx, func(ctx context.Context) error {
		err := db.PingContext(ctx)
		if err != nil {
			log.Warn("database not ready yet", zap.String("host", cfg.Host), zap.Error(err))
		}
		return err
	})
	if res.Err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", res.Err)
	}

	configure(db, cfg)
	log.Info("database connected", zap.String("host", cfg.Host), zap.Int("attempts", res.Attempts))
	return db, nil
}

func configure(db *sql.DB, cfg config.DatabaseConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
