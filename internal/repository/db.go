package repository

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens (or creates) the portal database at path and runs
// schema migration. Pass ":memory:" for an ephemeral database in tests.
func NewSQLiteDB(path string) (*gorm.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// each pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	// WAL keeps concurrent readers out of the writer's way. A no-op for
	// in-memory databases.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, err
		}
	}
	if err := db.AutoMigrate(&Service{}, &Event{}); err != nil {
		return nil, err
	}
	return db, nil
}
