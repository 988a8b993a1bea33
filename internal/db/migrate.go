package db

import (
	"storefront/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to the session database
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
}

// Migrate creates or updates the sessions table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.SessionRecord{})
}

// MustMigrate opens dsn and migrates it, exiting on failure
func MustMigrate(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	// AutoMigrate will create tables, missing columns and indexes
	if err := Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
