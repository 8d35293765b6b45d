// Package comment provides the comment/attachment store for tasks.
package comment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zulandar/summit/internal/apperr"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new comment. A comment must
// carry non-empty content or at least one attachment.
type CreateOpts struct {
	Content     string
	UserName    string
	Attachments []models.Attachment
}

// List returns the comments of a task, ascending by creation time. A
// missing task yields an empty list, not an error: listing is tolerant by
// contract.
func List(db *gorm.DB, taskID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := db.Where("task_id = ?", taskID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("comment: list for task %s: %w", taskID, err)
	}
	return comments, nil
}

// Create creates a comment on a task. UserName defaults to "Anonymous" and
// content to the empty string.
func Create(db *gorm.DB, taskID string, opts CreateOpts) (*models.Comment, error) {
	if strings.TrimSpace(opts.Content) == "" && len(opts.Attachments) == 0 {
		return nil, fmt.Errorf("comment: %w: content or at least one attachment is required", apperr.ErrValidation)
	}

	var count int64
	if err := db.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("comment: check task %s: %w", taskID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("comment: task %w: %s", apperr.ErrNotFound, taskID)
	}

	id, err := models.NewID("cm")
	if err != nil {
		return nil, err
	}

	c := models.Comment{
		ID:          id,
		TaskID:      taskID,
		UserName:    opts.UserName,
		Content:     opts.Content,
		Attachments: opts.Attachments,
	}
	if c.UserName == "" {
		c.UserName = "Anonymous"
	}
	if c.Attachments == nil {
		c.Attachments = models.AttachmentList{}
	}

	if err := db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("comment: create: %w", err)
	}
	return &c, nil
}

// Get retrieves a comment by ID.
func Get(db *gorm.DB, id string) (*models.Comment, error) {
	var c models.Comment
	if err := db.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment: %w: %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("comment: get %s: %w", id, err)
	}
	return &c, nil
}

// Update replaces a comment's content and refreshes updated_at.
func Update(db *gorm.DB, id, content string) (*models.Comment, error) {
	if _, err := Get(db, id); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Comment{}).Where("id = ?", id).
		Update("content", content).Error; err != nil {
		return nil, fmt.Errorf("comment: update %s: %w", id, err)
	}
	return Get(db, id)
}

// Delete removes a comment and returns its ID. Deliverables promoted from
// it keep their dangling back-reference.
func Delete(db *gorm.DB, id string) (string, error) {
	if _, err := Get(db, id); err != nil {
		return "", err
	}
	if err := db.Where("id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return "", fmt.Errorf("comment: delete %s: %w", id, err)
	}
	return id, nil
}
