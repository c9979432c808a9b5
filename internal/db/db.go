// Package db opens the data store and keeps its schema and seed data.
package db

import (
	"fmt"
	"regexp"

	"github.com/diewo77/go-commandes/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var passwordRegex = regexp.MustCompile(`(password=|://[^:/@]+:)([^\s@]+)`)

// Open connects to the configured data store and checks connectivity.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	case "postgres", "":
		dialector = postgres.Open(NormalizeDSN(cfg.URL))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	log.Info("connecting to database", zap.String("driver", cfg.Driver), zap.String("dsn", MaskDSN(cfg.URL)))
	conn, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return conn, nil
}

// MaskDSN hides the password of a key=value or URL DSN.
func MaskDSN(dsn string) string {
	return passwordRegex.ReplaceAllString(dsn, `${1}***`)
}
