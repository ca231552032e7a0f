package persistence

import (
	"testing"
	"time"

	"github.com/repairdesk/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a migrated in-memory SQLite database. A single connection
// keeps every statement on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open("file::memory:"), nil)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// at returns a fixed UTC instant offset by hours, for deterministic ordering.
func at(hours int) time.Time {
	return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC).Add(time.Duration(hours) * time.Hour)
}

func ptr[T any](v T) *T {
	return &v
}
