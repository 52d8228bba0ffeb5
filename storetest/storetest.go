// Package storetest opens throwaway databases for tests.
package storetest

import (
	"fmt"
	"strings"
	"testing"

	"avatar-progression/store"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite returns an empty per-test in-memory database. A single
// connection is used so every transaction sees the same memory database.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewDB returns an in-memory database with the progression schema applied.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := OpenSQLite(t)
	require.NoError(t, store.Migrate(db))
	return db
}
