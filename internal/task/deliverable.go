package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// DeliverableDraft holds caller-supplied fields for a new deliverable.
// Type defaults to "link" and the title to the URL.
type DeliverableDraft struct {
	Type      string
	URL       string
	Title     string
	Thumbnail *string
	AddedBy   *string
}

// CompletionCheck reports whether a task may transition to Done. Field
// names match the completion-check response shape consumed by clients.
type CompletionCheck struct {
	CanComplete      bool `json:"canComplete"`
	DeliverableCount int  `json:"deliverableCount"`
}

// ListDeliverables returns the ordered deliverable list of a task.
func ListDeliverables(db *gorm.DB, taskID string) ([]models.Deliverable, error) {
	t, err := Get(db, taskID)
	if err != nil {
		return nil, err
	}
	return t.FinalDeliverables, nil
}

// AddDeliverable appends one deliverable built from the draft and returns
// the full updated list. The append runs under the task's row lock.
func AddDeliverable(db *gorm.DB, taskID string, draft DeliverableDraft) ([]models.Deliverable, error) {
	if strings.TrimSpace(draft.URL) == "" {
		return nil, fmt.Errorf("task: %w: deliverable url is required", apperr.ErrValidation)
	}

	var updated models.DeliverableList
	err := db.Transaction(func(tx *gorm.DB) error {
		t, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}
		updated = append(t.FinalDeliverables, buildDeliverable(draft))
		return writeDeliverables(tx, taskID, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveDeliverable removes the element at a zero-based position and
// returns the updated list. The index is resolved to the element's stable
// ID inside the same locked transaction that writes the list back, so a
// concurrent mutation cannot shift which element is removed.
func RemoveDeliverable(db *gorm.DB, taskID string, index int) ([]models.Deliverable, error) {
	var updated models.DeliverableList
	err := db.Transaction(func(tx *gorm.DB) error {
		t, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(t.FinalDeliverables) {
			return fmt.Errorf("task: %w: deliverable index %d out of range [0, %d)",
				apperr.ErrValidation, index, len(t.FinalDeliverables))
		}

		removeID := t.FinalDeliverables[index].ID
		updated = make(models.DeliverableList, 0, len(t.FinalDeliverables)-1)
		for _, d := range t.FinalDeliverables {
			if d.ID != removeID {
				updated = append(updated, d)
			}
		}
		return writeDeliverables(tx, taskID, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CanComplete reports whether a task has the evidence required to be
// marked Done, together with its deliverable count.
func CanComplete(db *gorm.DB, taskID string) (*CompletionCheck, error) {
	t, err := Get(db, taskID)
	if err != nil {
		return nil, err
	}
	count := len(t.FinalDeliverables)
	return &CompletionCheck{CanComplete: count > 0, DeliverableCount: count}, nil
}

// buildDeliverable applies draft defaults and stamps a stable ID and the
// insertion time.
func buildDeliverable(draft DeliverableDraft) models.Deliverable {
	d := models.Deliverable{
		ID:        uuid.NewString(),
		Type:      draft.Type,
		URL:       draft.URL,
		Title:     draft.Title,
		Thumbnail: draft.Thumbnail,
		AddedBy:   draft.AddedBy,
		AddedAt:   time.Now().UTC(),
	}
	if d.Type == "" {
		d.Type = "link"
	}
	if d.Title == "" {
		d.Title = d.URL
	}
	return d
}

// writeDeliverables persists the list column; gorm refreshes updated_at.
func writeDeliverables(tx *gorm.DB, taskID string, list models.DeliverableList) error {
	if err := tx.Model(&models.Task{}).Where("id = ?", taskID).
		Update("final_deliverables", list).Error; err != nil {
		return fmt.Errorf("task: write deliverables of %s: %w", taskID, err)
	}
	return nil
}
