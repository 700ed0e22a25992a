// Package dbtest opens isolated in-memory SQLite stores for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"stockroom/internal/config"
	"stockroom/internal/database"
)

// New returns a fresh store with the schema in place. Each call gets its own named
// in-memory database, so tests never see each other's rows.
func New(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.OpenWithLogger(
		config.DatabaseConfig{Driver: "sqlite", DSN: dsn},
		gormLogger.Default.LogMode(gormLogger.Silent),
	)
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
