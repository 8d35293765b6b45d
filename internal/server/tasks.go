package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/summit/internal/task"
	"gorm.io/gorm"
)

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assignee_id"`
	WeekNumber  int        `json:"week_number"`
	Weight      *float64   `json:"weight"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	AssigneeID  *string    `json:"assignee_id"`
	WeekNumber  *int       `json:"week_number"`
	Weight      *float64   `json:"weight"`
	DueDate     *time.Time `json:"due_date"`
}

type updateStatusRequest struct {
	Status      string `json:"status"`
	EvidenceURL string `json:"evidence_url"`
}

type priorityScoreRequest struct {
	PriorityScore *float64 `json:"priority_score"`
}

func handleListTasks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := task.ListByObjective(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

func handleCreateTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		t, err := task.Create(db, task.CreateOpts{
			ObjectiveID: c.Param("id"),
			Title:       req.Title,
			Description: req.Description,
			AssigneeID:  req.AssigneeID,
			WeekNumber:  req.WeekNumber,
			Weight:      req.Weight,
			DueDate:     req.DueDate,
			Status:      req.Status,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

func handleGetTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := task.Get(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func handleUpdateTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		t, err := task.Update(db, c.Param("id"), task.UpdateOpts{
			Title:       req.Title,
			Description: req.Description,
			AssigneeID:  req.AssigneeID,
			WeekNumber:  req.WeekNumber,
			Weight:      req.Weight,
			DueDate:     req.DueDate,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func handleDeleteTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := task.Delete(db, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func handleUpdateTaskStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		t, err := task.UpdateStatus(db, c.Param("id"), req.Status, req.EvidenceURL)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func handleUpdateTaskPriorityScore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req priorityScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.PriorityScore == nil {
			badRequest(c, "priority_score is required")
			return
		}
		t, err := task.UpdatePriorityScore(db, c.Param("id"), *req.PriorityScore)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}
