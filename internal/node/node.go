// Package node provides organizational-unit lifecycle operations.
package node

import (
	"errors"
	"fmt"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new node.
type CreateOpts struct {
	Name              string
	Description       string
	Color             string
	OwnerID           string
	Central           bool
	RevenueGenerating bool
}

// UpdateOpts holds optional field updates for a node. Nil fields are left
// untouched.
type UpdateOpts struct {
	Name              *string
	Description       *string
	Color             *string
	OwnerID           *string
	Active            *bool
	Central           *bool
	RevenueGenerating *bool
}

// Create creates a new node with an auto-generated ID.
func Create(db *gorm.DB, opts CreateOpts) (*models.Node, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("node: %w: name is required", apperr.ErrValidation)
	}

	id, err := models.NewID("nd")
	if err != nil {
		return nil, err
	}

	n := models.Node{
		ID:                id,
		Name:              opts.Name,
		Description:       opts.Description,
		Color:             opts.Color,
		OwnerID:           opts.OwnerID,
		Active:            true,
		Central:           opts.Central,
		RevenueGenerating: opts.RevenueGenerating,
	}

	if err := db.Create(&n).Error; err != nil {
		return nil, fmt.Errorf("node: create: %w", err)
	}
	return &n, nil
}

// Get retrieves a node by ID.
func Get(db *gorm.DB, id string) (*models.Node, error) {
	var n models.Node
	if err := db.Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("node: %w: %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("node: get %s: %w", id, err)
	}
	return &n, nil
}

// List returns all nodes ordered by creation time.
func List(db *gorm.DB) ([]models.Node, error) {
	var nodes []models.Node
	if err := db.Order("created_at ASC").Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("node: list: %w", err)
	}
	return nodes, nil
}

// Update modifies the non-nil fields of opts on the node.
func Update(db *gorm.DB, id string, opts UpdateOpts) (*models.Node, error) {
	n, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if opts.Name != nil {
		if *opts.Name == "" {
			return nil, fmt.Errorf("node: %w: name must not be empty", apperr.ErrValidation)
		}
		updates["name"] = *opts.Name
	}
	if opts.Description != nil {
		updates["description"] = *opts.Description
	}
	if opts.Color != nil {
		updates["color"] = *opts.Color
	}
	if opts.OwnerID != nil {
		updates["owner_id"] = *opts.OwnerID
	}
	if opts.Active != nil {
		updates["active"] = *opts.Active
	}
	if opts.Central != nil {
		updates["central"] = *opts.Central
	}
	if opts.RevenueGenerating != nil {
		updates["revenue_generating"] = *opts.RevenueGenerating
	}

	if len(updates) > 0 {
		if err := db.Model(n).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("node: update %s: %w", id, err)
		}
	}
	return Get(db, id)
}

// Delete removes a node and everything it owns: periods, objectives,
// key results, tasks, comments, and project links. The cascade runs in a
// single transaction so a failure leaves the node intact.
func Delete(db *gorm.DB, id string) error {
	if _, err := Get(db, id); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var objectiveIDs []string
		if err := tx.Model(&models.Objective{}).
			Where("node_id = ? OR period_id IN (?)", id,
				tx.Model(&models.Period{}).Select("id").Where("node_id = ?", id)).
			Pluck("id", &objectiveIDs).Error; err != nil {
			return fmt.Errorf("node: collect objectives of %s: %w", id, err)
		}

		if len(objectiveIDs) > 0 {
			var taskIDs []string
			if err := tx.Model(&models.Task{}).
				Where("objective_id IN ?", objectiveIDs).
				Pluck("id", &taskIDs).Error; err != nil {
				return fmt.Errorf("node: collect tasks of %s: %w", id, err)
			}
			if len(taskIDs) > 0 {
				if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
					return fmt.Errorf("node: delete comments of %s: %w", id, err)
				}
				if err := tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
					return fmt.Errorf("node: delete tasks of %s: %w", id, err)
				}
			}
			if err := tx.Where("objective_id IN ?", objectiveIDs).Delete(&models.KeyResult{}).Error; err != nil {
				return fmt.Errorf("node: delete key results of %s: %w", id, err)
			}
			if err := tx.Exec("DELETE FROM project_objectives WHERE objective_id IN ?", objectiveIDs).Error; err != nil {
				return fmt.Errorf("node: delete project links of %s: %w", id, err)
			}
			if err := tx.Where("id IN ?", objectiveIDs).Delete(&models.Objective{}).Error; err != nil {
				return fmt.Errorf("node: delete objectives of %s: %w", id, err)
			}
		}

		if err := tx.Where("node_id = ?", id).Delete(&models.Period{}).Error; err != nil {
			return fmt.Errorf("node: delete periods of %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Node{}).Error; err != nil {
			return fmt.Errorf("node: delete %s: %w", id, err)
		}
		return nil
	})
}
