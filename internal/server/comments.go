package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/summit/internal/comment"
	"github.com/zulandar/summit/internal/models"
	"gorm.io/gorm"
)

type createCommentRequest struct {
	Content     string              `json:"content"`
	UserName    string              `json:"user_name"`
	Attachments []models.Attachment `json:"attachments"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func handleListComments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		comments, err := comment.List(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}

func handleCreateComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		cm, err := comment.Create(db, c.Param("id"), comment.CreateOpts{
			Content:     req.Content,
			UserName:    req.UserName,
			Attachments: req.Attachments,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cm)
	}
}

func handleUpdateComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		cm, err := comment.Update(db, c.Param("id"), req.Content)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cm)
	}
}

func handleDeleteComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := comment.Delete(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}
