package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/attendly/attendance-api/config"
	"github.com/attendly/attendance-api/models"
)

// Open connects to the configured engine and migrates the schema.
// The returned handle is passed to handlers explicitly; there is no
// package-level connection.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.DBEngine {
	case "sqlite":
		dial = sqlite.Open(cfg.DBPath)
	case "postgres", "":
		dial = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported DB_ENGINE %q", cfg.DBEngine)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Student{},
		&models.Attendance{},
		&models.Admin{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
