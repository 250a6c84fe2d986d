package testutil

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"docvault/internal/database"
	"docvault/internal/repository"
)

// OpenInMemoryDB opens a migrated in-memory SQLite database private to the test.
func OpenInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect("file:"+name+"?mode=memory&cache=shared", zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db, repository.Models()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
