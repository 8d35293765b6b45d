package objective

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// KeyResultOpts holds parameters for creating a new key result.
type KeyResultOpts struct {
	Description string
	TargetValue *float64
}

// CreateKeyResult creates a key result under an objective. The description
// must be unique among siblings under case-insensitive trimmed comparison;
// a collision surfaces as ErrDuplicate. display_order is assigned inside
// the insert transaction the same way as for objectives.
func CreateKeyResult(db *gorm.DB, objectiveID string, opts KeyResultOpts) (*models.KeyResult, error) {
	if strings.TrimSpace(opts.Description) == "" {
		return nil, fmt.Errorf("keyresult: %w: description is required", apperr.ErrValidation)
	}

	var count int64
	if err := db.Model(&models.Objective{}).Where("id = ?", objectiveID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("keyresult: check objective %s: %w", objectiveID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("keyresult: objective %w: %s", apperr.ErrNotFound, objectiveID)
	}

	id, err := models.NewID("kr")
	if err != nil {
		return nil, err
	}

	kr := models.KeyResult{
		ID:          id,
		ObjectiveID: objectiveID,
		Description: opts.Description,
		TargetValue: 100,
	}
	if opts.TargetValue != nil {
		kr.TargetValue = *opts.TargetValue
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var siblings []models.KeyResult
		if err := tx.Where("objective_id = ?", objectiveID).Find(&siblings).Error; err != nil {
			return fmt.Errorf("keyresult: list siblings of %s: %w", objectiveID, err)
		}
		want := strings.TrimSpace(opts.Description)
		for _, s := range siblings {
			if strings.EqualFold(strings.TrimSpace(s.Description), want) {
				return fmt.Errorf("keyresult: %w: a key result named %q already exists on this objective",
					apperr.ErrDuplicate, s.Description)
			}
		}

		order, err := nextDisplayOrder(tx.Model(&models.KeyResult{}).Where("objective_id = ?", objectiveID))
		if err != nil {
			return fmt.Errorf("keyresult: next display order: %w", err)
		}
		kr.DisplayOrder = order

		if err := tx.Create(&kr).Error; err != nil {
			return fmt.Errorf("keyresult: create: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &kr, nil
}

// GetKeyResult retrieves a key result by ID.
func GetKeyResult(db *gorm.DB, id string) (*models.KeyResult, error) {
	var kr models.KeyResult
	if err := db.Where("id = ?", id).First(&kr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("keyresult: %w: %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("keyresult: get %s: %w", id, err)
	}
	return &kr, nil
}

// ListKeyResults returns the key results of an objective ordered by
// display_order.
func ListKeyResults(db *gorm.DB, objectiveID string) ([]models.KeyResult, error) {
	var results []models.KeyResult
	if err := db.Where("objective_id = ?", objectiveID).
		Order("display_order ASC, created_at ASC").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("keyresult: list for %s: %w", objectiveID, err)
	}
	return results, nil
}

// KeyResultUpdateOpts holds optional field updates for a key result. No
// duplicate check applies on update; uniqueness is creation-time only.
type KeyResultUpdateOpts struct {
	Description  *string
	TargetValue  *float64
	CurrentValue *float64
}

// UpdateKeyResult modifies the non-nil fields of opts on the key result.
func UpdateKeyResult(db *gorm.DB, id string, opts KeyResultUpdateOpts) (*models.KeyResult, error) {
	if _, err := GetKeyResult(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if opts.Description != nil {
		if strings.TrimSpace(*opts.Description) == "" {
			return nil, fmt.Errorf("keyresult: %w: description must not be empty", apperr.ErrValidation)
		}
		updates["description"] = *opts.Description
	}
	if opts.TargetValue != nil {
		updates["target_value"] = *opts.TargetValue
	}
	if opts.CurrentValue != nil {
		updates["current_value"] = *opts.CurrentValue
	}

	if len(updates) > 0 {
		if err := db.Model(&models.KeyResult{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("keyresult: update %s: %w", id, err)
		}
	}
	return GetKeyResult(db, id)
}

// UpdateKeyResultOrder sets a key result's display_order verbatim.
func UpdateKeyResultOrder(db *gorm.DB, id string, order int) (*models.KeyResult, error) {
	if _, err := GetKeyResult(db, id); err != nil {
		return nil, err
	}
	if err := db.Model(&models.KeyResult{}).Where("id = ?", id).
		Update("display_order", order).Error; err != nil {
		return nil, fmt.Errorf("keyresult: update order of %s: %w", id, err)
	}
	return GetKeyResult(db, id)
}

// UpdateKeyResultProgress sets a key result's current value.
func UpdateKeyResultProgress(db *gorm.DB, id string, current float64) (*models.KeyResult, error) {
	if _, err := GetKeyResult(db, id); err != nil {
		return nil, err
	}
	if err := db.Model(&models.KeyResult{}).Where("id = ?", id).
		Update("current_value", current).Error; err != nil {
		return nil, fmt.Errorf("keyresult: update progress of %s: %w", id, err)
	}
	return GetKeyResult(db, id)
}

// DeleteKeyResult removes a key result.
func DeleteKeyResult(db *gorm.DB, id string) error {
	if _, err := GetKeyResult(db, id); err != nil {
		return err
	}
	if err := db.Where("id = ?", id).Delete(&models.KeyResult{}).Error; err != nil {
		return fmt.Errorf("keyresult: delete %s: %w", id, err)
	}
	return nil
}
