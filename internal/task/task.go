// Package task provides task lifecycle operations, the deliverable store,
// and the completion gate: a task reaches the Done status only with at
// least one recorded deliverable.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateOpts holds parameters for creating a new task.
type CreateOpts struct {
	ObjectiveID string
	Title       string
	Description string
	AssigneeID  string
	WeekNumber  int
	Weight      *float64
	DueDate     *time.Time
	Status      string
}

// UpdateOpts holds optional field updates for a task. Status changes go
// through UpdateStatus so the completion gate always runs.
type UpdateOpts struct {
	Title       *string
	Description *string
	AssigneeID  *string
	WeekNumber  *int
	Weight      *float64
	DueDate     *time.Time
}

// Create creates a new task under an objective. Status defaults to Todo
// and the priority score starts at 0; its calculation is external.
func Create(db *gorm.DB, opts CreateOpts) (*models.Task, error) {
	if opts.Title == "" {
		return nil, fmt.Errorf("task: %w: title is required", apperr.ErrValidation)
	}

	var count int64
	if err := db.Model(&models.Objective{}).Where("id = ?", opts.ObjectiveID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("task: check objective %s: %w", opts.ObjectiveID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("task: objective %w: %s", apperr.ErrNotFound, opts.ObjectiveID)
	}

	id, err := models.NewID("tk")
	if err != nil {
		return nil, err
	}

	t := models.Task{
		ID:                id,
		ObjectiveID:       opts.ObjectiveID,
		Title:             opts.Title,
		Description:       opts.Description,
		AssigneeID:        opts.AssigneeID,
		WeekNumber:        opts.WeekNumber,
		Weight:            1,
		DueDate:           opts.DueDate,
		Status:            "Todo",
		FinalDeliverables: models.DeliverableList{},
	}
	if opts.Weight != nil {
		t.Weight = *opts.Weight
	}
	if opts.Status != "" {
		if opts.Status == models.StatusDone {
			return nil, fmt.Errorf("task: %w: cannot create a task as %s", apperr.ErrValidation, models.StatusDone)
		}
		t.Status = opts.Status
	}

	if err := db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("task: create: %w", err)
	}
	return &t, nil
}

// Get retrieves a task by ID.
func Get(db *gorm.DB, id string) (*models.Task, error) {
	var t models.Task
	if err := db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task: %w: %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("task: get %s: %w", id, err)
	}
	return &t, nil
}

// ListByObjective returns the tasks of an objective ordered by creation
// time.
func ListByObjective(db *gorm.DB, objectiveID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := db.Where("objective_id = ?", objectiveID).
		Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("task: list for objective %s: %w", objectiveID, err)
	}
	return tasks, nil
}

// Update modifies the non-nil fields of opts on the task.
func Update(db *gorm.DB, id string, opts UpdateOpts) (*models.Task, error) {
	if _, err := Get(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if opts.Title != nil {
		if *opts.Title == "" {
			return nil, fmt.Errorf("task: %w: title must not be empty", apperr.ErrValidation)
		}
		updates["title"] = *opts.Title
	}
	if opts.Description != nil {
		updates["description"] = *opts.Description
	}
	if opts.AssigneeID != nil {
		updates["assignee_id"] = *opts.AssigneeID
	}
	if opts.WeekNumber != nil {
		updates["week_number"] = *opts.WeekNumber
	}
	if opts.Weight != nil {
		updates["weight"] = *opts.Weight
	}
	if opts.DueDate != nil {
		updates["due_date"] = *opts.DueDate
	}

	if len(updates) > 0 {
		if err := db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("task: update %s: %w", id, err)
		}
	}
	return Get(db, id)
}

// UpdateStatus sets a task's status. Any non-Done status is accepted
// unconditionally. Done requires at least one deliverable; a non-empty
// evidenceURL is the deprecated single-evidence alias and is appended to
// the deliverable list before the gate runs, so legacy callers still pass.
// A rejected transition persists nothing.
func UpdateStatus(db *gorm.DB, id, status, evidenceURL string) (*models.Task, error) {
	if status == "" {
		return nil, fmt.Errorf("task: %w: status is required", apperr.ErrValidation)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		t, err := lockTask(tx, id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"status": status}
		if status == models.StatusDone {
			if strings.TrimSpace(evidenceURL) != "" {
				d := buildDeliverable(DeliverableDraft{URL: evidenceURL})
				t.FinalDeliverables = append(t.FinalDeliverables, d)
				updates["final_deliverables"] = t.FinalDeliverables
				updates["evidence_url"] = evidenceURL
			}
			if len(t.FinalDeliverables) == 0 {
				return fmt.Errorf("task: %w: cannot mark task %s as %s without at least one deliverable",
					apperr.ErrValidation, id, models.StatusDone)
			}
		} else if strings.TrimSpace(evidenceURL) != "" {
			updates["evidence_url"] = evidenceURL
		}

		if err := tx.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("task: update status of %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, id)
}

// UpdatePriorityScore stores an externally computed priority score.
func UpdatePriorityScore(db *gorm.DB, id string, score float64) (*models.Task, error) {
	if _, err := Get(db, id); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Task{}).Where("id = ?", id).
		Update("priority_score", score).Error; err != nil {
		return nil, fmt.Errorf("task: update priority score of %s: %w", id, err)
	}
	return Get(db, id)
}

// Delete removes a task and its comments.
func Delete(db *gorm.DB, id string) error {
	if _, err := Get(db, id); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("task: delete comments of %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("task: delete %s: %w", id, err)
		}
		return nil
	})
}

// lockTask loads a task under a FOR UPDATE row lock so deliverable-list
// read-modify-write cycles are serialized per task. The sqlite test driver
// ignores the locking clause.
func lockTask(tx *gorm.DB, id string) (*models.Task, error) {
	var t models.Task
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task: %w: %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("task: lock %s: %w", id, err)
	}
	return &t, nil
}
