// Package postgres wires the relational store: connection setup, schema
// migration, and the gorm-backed repository implementations. All uniqueness
// and referential-integrity invariants (email uniqueness, composite vote key,
// cascading foreign keys) live in the schema, not in application code.
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/postable/content-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a connection.
type Config struct {
	DSN         string
	AutoMigrate bool
	Timeout     time.Duration
}

// Connect opens a gorm connection, verifies connectivity with a ping, and
// optionally migrates the schema. TranslateError is enabled so constraint
// violations surface as gorm.ErrDuplicatedKey.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Post{}, &domain.Vote{}); err != nil {
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
	}

	return db, nil
}
