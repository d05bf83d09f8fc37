// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"kudos_web/internal/platform/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory sqlite database and migrates models into it.
// The database is closed when the test ends.
func NewSQLiteDB(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.SQLite(dsn), gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps transactions from locking each other out.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { database.CloseGORMDB(db, zap.NewNop()) })

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...))
	}
	return db
}
