package db

import (
	"fmt"

	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Node{},
		&models.Period{},
		&models.Objective{},
		&models.KeyResult{},
		&models.Task{},
		&models.Comment{},
		&models.Project{},
	}
}

// AutoMigrate creates or updates all Summit tables, including the
// project_objectives join table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
