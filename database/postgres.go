package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chirper/domain"
)

// DB wraps the gorm connection handle together with its DSN.
type DB struct {
	Gorm *gorm.DB
	DSN string
}

func NewDB(dsn string) *DB {
	return &DB{
		DSN: dsn,
	}
}

// Open connects to postgres. Query logging is on outside of production.
func Open(db *DB, isProd bool) (err error) {
	if db.DSN == "" {
		return fmt.Errorf("dsn required")
	}
	logMode := logger.Default.LogMode(logger.Info)
	if isProd {
		logMode = logger.Default.LogMode(logger.Error)
	}
	db.Gorm, err = gorm.Open(postgres.Open(db.DSN), &gorm.Config{
		Logger: logMode,
	})
	if err != nil {
		return fmt.Errorf("err opening gorm postgres connection: %w", err)
	}
	return nil
}

// Close closes the underlying sql connection pool.
func Close(db *DB) error {
	sqlDB, err := db.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the tables for all models.
func AutoMigrate(db *DB) error {
	if err := migrate(db.Gorm); err != nil {
		return fmt.Errorf("err migrating: %w", err)
	}
	return nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Tweet{},
		&domain.Follow{},
		&domain.Like{},
		&domain.HashtagEntry{},
	)
}
