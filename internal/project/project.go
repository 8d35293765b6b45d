// Package project provides project lifecycle operations. Projects link to
// objectives through an associative table; link changes commit atomically
// with the project write or not at all.
package project

import (
	"errors"
	"fmt"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new project.
type CreateOpts struct {
	Name         string
	Description  string
	Status       string
	ObjectiveIDs []string
}

// UpdateOpts holds optional field updates for a project. A non-nil
// ObjectiveIDs replaces the full link set.
type UpdateOpts struct {
	Name         *string
	Description  *string
	Status       *string
	ObjectiveIDs *[]string
}

// Create creates a project and its objective links in one transaction. An
// unknown objective ID rolls everything back.
func Create(db *gorm.DB, opts CreateOpts) (*models.Project, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("project: %w: name is required", apperr.ErrValidation)
	}

	id, err := models.NewID("pj")
	if err != nil {
		return nil, err
	}

	p := models.Project{
		ID:          id,
		Name:        opts.Name,
		Description: opts.Description,
		Status:      opts.Status,
	}
	if p.Status == "" {
		p.Status = "active"
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("project: create: %w", err)
		}
		if len(opts.ObjectiveIDs) > 0 {
			objectives, err := loadObjectives(tx, opts.ObjectiveIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&p).Association("Objectives").Append(objectives); err != nil {
				return fmt.Errorf("project: link objectives: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, p.ID)
}

// Get retrieves a project by ID with its linked objectives.
func Get(db *gorm.DB, id string) (*models.Project, error) {
	var p models.Project
	if err := db.Preload("Objectives").Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project: %w: %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("project: get %s: %w", id, err)
	}
	return &p, nil
}

// List returns all projects ordered by creation time.
func List(db *gorm.DB) ([]models.Project, error) {
	var projects []models.Project
	if err := db.Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project: list: %w", err)
	}
	return projects, nil
}

// Update modifies project fields and, when ObjectiveIDs is non-nil,
// replaces the link set, all inside one transaction.
func Update(db *gorm.DB, id string, opts UpdateOpts) (*models.Project, error) {
	p, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if opts.Name != nil {
		if *opts.Name == "" {
			return nil, fmt.Errorf("project: %w: name must not be empty", apperr.ErrValidation)
		}
		updates["name"] = *opts.Name
	}
	if opts.Description != nil {
		updates["description"] = *opts.Description
	}
	if opts.Status != nil {
		updates["status"] = *opts.Status
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("project: update %s: %w", id, err)
			}
		}
		if opts.ObjectiveIDs != nil {
			objectives, err := loadObjectives(tx, *opts.ObjectiveIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(p).Association("Objectives").Replace(objectives); err != nil {
				return fmt.Errorf("project: replace objective links of %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, id)
}

// Delete removes a project and its objective links.
func Delete(db *gorm.DB, id string) error {
	p, err := Get(db, id)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(p).Association("Objectives").Clear(); err != nil {
			return fmt.Errorf("project: clear objective links of %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("project: delete %s: %w", id, err)
		}
		return nil
	})
}

// loadObjectives fetches all referenced objectives, failing if any ID is
// unknown so the surrounding transaction rolls back.
func loadObjectives(tx *gorm.DB, ids []string) ([]models.Objective, error) {
	var objectives []models.Objective
	if err := tx.Where("id IN ?", ids).Find(&objectives).Error; err != nil {
		return nil, fmt.Errorf("project: load objectives: %w", err)
	}
	if len(objectives) != len(ids) {
		return nil, fmt.Errorf("project: objective %w: %d of %d referenced objectives exist",
			apperr.ErrNotFound, len(objectives), len(ids))
	}
	return objectives, nil
}
