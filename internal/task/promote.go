package task

import (
	"errors"
	"fmt"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// PromotionResult holds the outcome of promoting a comment attachment.
type PromotionResult struct {
	Deliverables []models.Deliverable `json:"deliverables"`
	Promoted     models.Deliverable   `json:"promoted"`
}

// PromoteAttachment converts one attachment of one comment into a task
// deliverable, recording the origin comment. The comment lookup is scoped
// to the task so an attachment cannot be promoted through a comment that
// belongs to a different task. The back-reference is informational only:
// deleting the comment later leaves it dangling.
func PromoteAttachment(db *gorm.DB, taskID, commentID string, attachmentIndex int, addedBy string) (*PromotionResult, error) {
	var c models.Comment
	if err := db.Where("id = ? AND task_id = ?", commentID, taskID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task: comment %w: %s on task %s", apperr.ErrNotFound, commentID, taskID)
		}
		return nil, fmt.Errorf("task: get comment %s: %w", commentID, err)
	}

	if attachmentIndex < 0 || attachmentIndex >= len(c.Attachments) {
		return nil, fmt.Errorf("task: %w: attachment index %d out of range [0, %d)",
			apperr.ErrValidation, attachmentIndex, len(c.Attachments))
	}
	att := c.Attachments[attachmentIndex]

	d := buildDeliverable(DeliverableDraft{
		Type:      att.Type,
		URL:       att.URL,
		Title:     att.Name,
		Thumbnail: att.Thumbnail,
	})
	if att.Type == "" {
		// Promoted attachments default to "file", not "link".
		d.Type = "file"
	}
	d.PromotedFromCommentID = &c.ID
	if addedBy != "" {
		d.AddedBy = &addedBy
	}

	var updated models.DeliverableList
	err := db.Transaction(func(tx *gorm.DB) error {
		t, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}
		updated = append(t.FinalDeliverables, d)
		return writeDeliverables(tx, taskID, updated)
	})
	if err != nil {
		return nil, err
	}
	return &PromotionResult{Deliverables: updated, Promoted: d}, nil
}
