package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/database/dbtest"
	"stockroom/internal/models"
)

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := dbtest.New(t)

	// dbtest.New already ran it once.
	require.NoError(t, database.EnsureSchema(db))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.User{}))
	assert.True(t, migrator.HasTable(&models.Aisle{}))
	assert.True(t, migrator.HasTable(&models.Product{}))
	assert.True(t, migrator.HasIndex(&models.User{}, "Username"))
}

func TestPing(t *testing.T) {
	db := dbtest.New(t)
	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: "oracle", DSN: "ignored"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
