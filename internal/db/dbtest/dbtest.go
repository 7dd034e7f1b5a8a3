// Package dbtest opens throwaway SQLite databases with the accounts schema.
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"planner-auth/internal/account"
)

// Open returns a migrated database file under t.TempDir.
func Open(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := filepath.Join(tb.TempDir(), "accounts_test.db")
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("dbtest: open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(&account.Account{}); err != nil {
		tb.Fatalf("dbtest: migrate: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}
