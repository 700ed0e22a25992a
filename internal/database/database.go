package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"stockroom/internal/config"
	"stockroom/internal/models"
)

// Open connects to the configured store. The returned handle is shared by all requests
// for the lifetime of the process.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return OpenWithLogger(cfg, gormLog)
}

// OpenWithLogger is Open with a caller-supplied gorm logger.
func OpenWithLogger(cfg config.DatabaseConfig, gormLog gormLogger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// Unique and foreign key violations come back as gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
		TranslateError: true,
		Logger:         gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		// SQLite has no row locks; a single connection serializes every transaction.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sqlite connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// EnsureSchema creates the users, aisles and products tables when they are missing.
// It is idempotent and is run once before the store serves traffic.
func EnsureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Aisle{}, &models.Product{}); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Ping checks that the store is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
