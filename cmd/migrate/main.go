package main

import (
	"storefront/internal/config" // Configuration
	"storefront/internal/db"     // Session database
)

// Main entry point for migration of the MySQL session store
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.MustMigrate(cfg.DSN())
}
