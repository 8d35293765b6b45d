// Package objective provides objective and key-result lifecycle operations,
// including the dense display-order assignment shared by both.
package objective

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new objective. Exactly one of
// NodeID and PeriodID must be set.
type CreateOpts struct {
	NodeID      string
	PeriodID    string
	Description string
	TargetValue *float64
	Quarter     *int
	Year        *int
}

// UpdateOpts holds optional field updates for an objective.
type UpdateOpts struct {
	Description  *string
	TargetValue  *float64
	CurrentValue *float64
	Quarter      *int
	Year         *int
}

// Create creates a new objective. Its display_order is assigned inside the
// insert transaction as one greater than the current sibling maximum, so
// the first sibling gets 0.
func Create(db *gorm.DB, opts CreateOpts) (*models.Objective, error) {
	if opts.Description == "" {
		return nil, fmt.Errorf("objective: %w: description is required", apperr.ErrValidation)
	}
	if (opts.NodeID == "") == (opts.PeriodID == "") {
		return nil, fmt.Errorf("objective: %w: exactly one of node_id and period_id is required", apperr.ErrValidation)
	}

	if opts.NodeID != "" {
		var count int64
		if err := db.Model(&models.Node{}).Where("id = ?", opts.NodeID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("objective: check node %s: %w", opts.NodeID, err)
		}
		if count == 0 {
			return nil, fmt.Errorf("objective: node %w: %s", apperr.ErrNotFound, opts.NodeID)
		}
	} else {
		var count int64
		if err := db.Model(&models.Period{}).Where("id = ?", opts.PeriodID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("objective: check period %s: %w", opts.PeriodID, err)
		}
		if count == 0 {
			return nil, fmt.Errorf("objective: period %w: %s", apperr.ErrNotFound, opts.PeriodID)
		}
	}

	id, err := models.NewID("ob")
	if err != nil {
		return nil, err
	}

	o := models.Objective{
		ID:          id,
		Description: opts.Description,
		TargetValue: 100,
		Quarter:     opts.Quarter,
		Year:        opts.Year,
	}
	if opts.TargetValue != nil {
		o.TargetValue = *opts.TargetValue
	}
	if opts.NodeID != "" {
		o.NodeID = &opts.NodeID
	}
	if opts.PeriodID != "" {
		o.PeriodID = &opts.PeriodID
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		sibs := tx.Model(&models.Objective{})
		if o.NodeID != nil {
			sibs = sibs.Where("node_id = ?", *o.NodeID)
		} else {
			sibs = sibs.Where("period_id = ?", *o.PeriodID)
		}
		order, err := nextDisplayOrder(sibs)
		if err != nil {
			return fmt.Errorf("objective: next display order: %w", err)
		}
		o.DisplayOrder = order
		if err := tx.Create(&o).Error; err != nil {
			return fmt.Errorf("objective: create: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Get retrieves an objective by ID, preloading its key results ordered by
// display_order.
func Get(db *gorm.DB, id string) (*models.Objective, error) {
	var o models.Objective
	err := db.Preload("KeyResults", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	}).Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("objective: %w: %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("objective: get %s: %w", id, err)
	}
	return &o, nil
}

// ListFilters holds optional filters for listing objectives.
type ListFilters struct {
	NodeID   string
	PeriodID string
}

// List returns objectives matching the filters, ordered by display_order
// then creation time.
func List(db *gorm.DB, filters ListFilters) ([]models.Objective, error) {
	q := db.Model(&models.Objective{})
	if filters.NodeID != "" {
		q = q.Where("node_id = ?", filters.NodeID)
	}
	if filters.PeriodID != "" {
		q = q.Where("period_id = ?", filters.PeriodID)
	}

	var objectives []models.Objective
	if err := q.Order("display_order ASC, created_at ASC").Find(&objectives).Error; err != nil {
		return nil, fmt.Errorf("objective: list: %w", err)
	}
	return objectives, nil
}

// Update modifies the non-nil fields of opts on the objective.
func Update(db *gorm.DB, id string, opts UpdateOpts) (*models.Objective, error) {
	if _, err := Get(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if opts.Description != nil {
		if *opts.Description == "" {
			return nil, fmt.Errorf("objective: %w: description must not be empty", apperr.ErrValidation)
		}
		updates["description"] = *opts.Description
	}
	if opts.TargetValue != nil {
		updates["target_value"] = *opts.TargetValue
	}
	if opts.CurrentValue != nil {
		updates["current_value"] = *opts.CurrentValue
	}
	if opts.Quarter != nil {
		updates["quarter"] = *opts.Quarter
	}
	if opts.Year != nil {
		updates["year"] = *opts.Year
	}

	if len(updates) > 0 {
		if err := db.Model(&models.Objective{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("objective: update %s: %w", id, err)
		}
	}
	return Get(db, id)
}

// UpdateOrder sets an objective's display_order verbatim. No collision
// check or renormalization: the caller owns ordering density.
func UpdateOrder(db *gorm.DB, id string, order int) (*models.Objective, error) {
	if _, err := Get(db, id); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Objective{}).Where("id = ?", id).
		Update("display_order", order).Error; err != nil {
		return nil, fmt.Errorf("objective: update order of %s: %w", id, err)
	}
	return Get(db, id)
}

// Delete removes an objective together with its key results, tasks, task
// comments, and project links.
func Delete(db *gorm.DB, id string) error {
	if _, err := Get(db, id); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []string
		if err := tx.Model(&models.Task{}).Where("objective_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return fmt.Errorf("objective: collect tasks of %s: %w", id, err)
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
				return fmt.Errorf("objective: delete comments of %s: %w", id, err)
			}
			if err := tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
				return fmt.Errorf("objective: delete tasks of %s: %w", id, err)
			}
		}
		if err := tx.Where("objective_id = ?", id).Delete(&models.KeyResult{}).Error; err != nil {
			return fmt.Errorf("objective: delete key results of %s: %w", id, err)
		}
		if err := tx.Exec("DELETE FROM project_objectives WHERE objective_id = ?", id).Error; err != nil {
			return fmt.Errorf("objective: delete project links of %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Objective{}).Error; err != nil {
			return fmt.Errorf("objective: delete %s: %w", id, err)
		}
		return nil
	})
}

// nextDisplayOrder computes MAX(display_order)+1 over a sibling query,
// treating an empty sibling set as -1 so the first element gets 0.
func nextDisplayOrder(siblings *gorm.DB) (int, error) {
	var max sql.NullInt64
	if err := siblings.Select("MAX(display_order)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}
