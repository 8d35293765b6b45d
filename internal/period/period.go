// Package period provides objective-group lifecycle and replication
// operations. A period is a named time window scoped to one node.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new period.
type CreateOpts struct {
	NodeID     string
	Alias      string
	TargetDate *time.Time
}

// UpdateOpts holds optional field updates for a period.
type UpdateOpts struct {
	Alias      *string
	TargetDate *time.Time
}

// Create creates a new period on a node. Direct creation deliberately does
// not check alias uniqueness; only replication skips duplicates.
func Create(db *gorm.DB, opts CreateOpts) (*models.Period, error) {
	if opts.Alias == "" {
		return nil, fmt.Errorf("period: %w: alias is required", apperr.ErrValidation)
	}

	var count int64
	if err := db.Model(&models.Node{}).Where("id = ?", opts.NodeID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("period: check node %s: %w", opts.NodeID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("period: node %w: %s", apperr.ErrNotFound, opts.NodeID)
	}

	id, err := models.NewID("pd")
	if err != nil {
		return nil, err
	}

	p := models.Period{
		ID:         id,
		NodeID:     opts.NodeID,
		Alias:      opts.Alias,
		TargetDate: opts.TargetDate,
	}
	if err := db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("period: create: %w", err)
	}
	return &p, nil
}

// Get retrieves a period by ID.
func Get(db *gorm.DB, id string) (*models.Period, error) {
	var p models.Period
	if err := db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("period: %w: %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("period: get %s: %w", id, err)
	}
	return &p, nil
}

// ListByNode returns all periods of a node ordered by creation time.
func ListByNode(db *gorm.DB, nodeID string) ([]models.Period, error) {
	var periods []models.Period
	if err := db.Where("node_id = ?", nodeID).Order("created_at ASC").Find(&periods).Error; err != nil {
		return nil, fmt.Errorf("period: list for node %s: %w", nodeID, err)
	}
	return periods, nil
}

// Update modifies the non-nil fields of opts on the period.
func Update(db *gorm.DB, id string, opts UpdateOpts) (*models.Period, error) {
	p, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if opts.Alias != nil {
		if *opts.Alias == "" {
			return nil, fmt.Errorf("period: %w: alias must not be empty", apperr.ErrValidation)
		}
		updates["alias"] = *opts.Alias
	}
	if opts.TargetDate != nil {
		updates["target_date"] = *opts.TargetDate
	}

	if len(updates) > 0 {
		if err := db.Model(p).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("period: update %s: %w", id, err)
		}
	}
	return Get(db, id)
}

// Delete removes a period. Objectives grouped under it are detached, not
// deleted; only node deletion cascades.
func Delete(db *gorm.DB, id string) error {
	if _, err := Get(db, id); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Objective{}).Where("period_id = ?", id).
			Update("period_id", nil).Error; err != nil {
			return fmt.Errorf("period: detach objectives of %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Period{}).Error; err != nil {
			return fmt.Errorf("period: delete %s: %w", id, err)
		}
		return nil
	})
}
