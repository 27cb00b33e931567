package infra

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/amirasaad/wallet/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the SQLite file named by cnf.DSN, creating its
// directory if needed.
func NewDBConnection(
	cnf *config.Storage,
	appEnv string,
) (*gorm.DB, error) {
	dsn := cnf.DSN
	if dsn == "" {
		return nil, errors.New("STORAGE_DSN is not set")
	}
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Warn
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}
