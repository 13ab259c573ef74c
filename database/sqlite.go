package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTest opens a fresh in-memory sqlite database with the full schema.
// The connection pool is capped at a single connection: each :memory:
// connection would otherwise get its own empty database, and the single
// connection also serializes concurrent writers the way postgres would
// with its row locks.
func OpenTest() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("err opening in-memory sqlite connection: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("err migrating: %w", err)
	}
	return db, nil
}
