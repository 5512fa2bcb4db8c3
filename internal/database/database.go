// Package database opens the ledger store.
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/config"
	"github.com/budgetwise/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect opens the database, migrates the schema and registers the
// error handling callbacks.
func Connect(cfg config.Database) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return connectSQLite(cfg.DSN)
	case config.DriverMySQL:
		return connectMySQL(cfg.DSN)
	}

	return nil, fmt.Errorf("unsupported database driver '%s'", cfg.Driver)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
		TranslateError: true,
	}
}

func connectSQLite(dsn string) (*gorm.DB, error) {
	path, _, _ := strings.Cut(dsn, "?")
	inMemory := path == ":memory:" || strings.Contains(dsn, "mode=memory")

	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		// Migration with foreign keys disabled
		//
		// sqlite does not support ALTER COLUMN, so tables are copied to a temporary table,
		// then the table is dropped and recreated
		db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := models.Migrate(db); err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database object: %w", err)
		}
		sqlDB.Close()
	}

	// Now, reconnect with foreign keys enabled
	db, err := gorm.Open(sqlite.Open(withPragma(dsn, "foreign_keys(1)")), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	if inMemory {
		if err := models.Migrate(db); err != nil {
			return nil, err
		}
	}

	if err := models.RegisterCallbacks(db); err != nil {
		return nil, err
	}

	return db, nil
}

func connectMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)

	if err := models.Migrate(db); err != nil {
		return nil, err
	}

	if err := models.RegisterCallbacks(db); err != nil {
		return nil, err
	}

	return db, nil
}

// withPragma appends a _pragma parameter to a SQLite DSN.
func withPragma(dsn, pragma string) string {
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	return fmt.Sprintf("%s%s_pragma=%s", dsn, separator, pragma)
}
