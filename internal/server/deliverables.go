package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/summit/internal/task"
	"gorm.io/gorm"
)

type addDeliverableRequest struct {
	Type      string  `json:"type"`
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Thumbnail *string `json:"thumbnail"`
	AddedBy   *string `json:"added_by"`
}

type promoteRequest struct {
	CommentID       string `json:"comment_id"`
	AttachmentIndex *int   `json:"attachment_index"`
	AddedBy         string `json:"added_by"`
}

func handleListDeliverables(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		deliverables, err := task.ListDeliverables(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, deliverables)
	}
}

func handleAddDeliverable(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addDeliverableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		deliverables, err := task.AddDeliverable(db, c.Param("id"), task.DeliverableDraft{
			Type:      req.Type,
			URL:       req.URL,
			Title:     req.Title,
			Thumbnail: req.Thumbnail,
			AddedBy:   req.AddedBy,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, deliverables)
	}
}

func handleRemoveDeliverable(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			badRequest(c, "index must be an integer")
			return
		}
		deliverables, err := task.RemoveDeliverable(db, c.Param("id"), index)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, deliverables)
	}
}

func handlePromoteAttachment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req promoteRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" || req.AttachmentIndex == nil {
			badRequest(c, "comment_id and attachment_index are required")
			return
		}
		result, err := task.PromoteAttachment(db, c.Param("id"), req.CommentID, *req.AttachmentIndex, req.AddedBy)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func handleCanComplete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		check, err := task.CanComplete(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		msg := "task has the evidence required to be marked Done"
		if !check.CanComplete {
			msg = "add at least one deliverable before marking this task Done"
		}
		c.JSON(http.StatusOK, gin.H{
			"canComplete":      check.CanComplete,
			"deliverableCount": check.DeliverableCount,
			"message":          msg,
		})
	}
}
