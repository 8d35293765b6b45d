package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/summit/internal/objective"
	"gorm.io/gorm"
)

type createObjectiveRequest struct {
	NodeID      string   `json:"node_id"`
	PeriodID    string   `json:"period_id"`
	Description string   `json:"description"`
	TargetValue *float64 `json:"target_value"`
	Quarter     *int     `json:"quarter"`
	Year        *int     `json:"year"`
}

type updateObjectiveRequest struct {
	Description  *string  `json:"description"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue *float64 `json:"current_value"`
	Quarter      *int     `json:"quarter"`
	Year         *int     `json:"year"`
}

type orderRequest struct {
	DisplayOrder *int `json:"display_order"`
}

func handleListObjectives(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		objectives, err := objective.List(db, objective.ListFilters{
			NodeID:   c.Query("node_id"),
			PeriodID: c.Query("period_id"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, objectives)
	}
}

func handleCreateObjective(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createObjectiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		o, err := objective.Create(db, objective.CreateOpts{
			NodeID:      req.NodeID,
			PeriodID:    req.PeriodID,
			Description: req.Description,
			TargetValue: req.TargetValue,
			Quarter:     req.Quarter,
			Year:        req.Year,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

func handleGetObjective(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := objective.Get(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func handleUpdateObjective(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateObjectiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		o, err := objective.Update(db, c.Param("id"), objective.UpdateOpts{
			Description:  req.Description,
			TargetValue:  req.TargetValue,
			CurrentValue: req.CurrentValue,
			Quarter:      req.Quarter,
			Year:         req.Year,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func handleDeleteObjective(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := objective.Delete(db, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func handleUpdateObjectiveOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.DisplayOrder == nil {
			badRequest(c, "display_order is required")
			return
		}
		o, err := objective.UpdateOrder(db, c.Param("id"), *req.DisplayOrder)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
