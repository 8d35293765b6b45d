package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/summit/internal/objective"
	"gorm.io/gorm"
)

type createKeyResultRequest struct {
	Description string   `json:"description"`
	TargetValue *float64 `json:"target_value"`
}

type updateKeyResultRequest struct {
	Description  *string  `json:"description"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue *float64 `json:"current_value"`
}

type progressRequest struct {
	CurrentValue *float64 `json:"current_value"`
}

func handleListKeyResults(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := objective.ListKeyResults(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func handleCreateKeyResult(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createKeyResultRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		kr, err := objective.CreateKeyResult(db, c.Param("id"), objective.KeyResultOpts{
			Description: req.Description,
			TargetValue: req.TargetValue,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, kr)
	}
}

func handleUpdateKeyResult(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateKeyResultRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		kr, err := objective.UpdateKeyResult(db, c.Param("id"), objective.KeyResultUpdateOpts{
			Description:  req.Description,
			TargetValue:  req.TargetValue,
			CurrentValue: req.CurrentValue,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, kr)
	}
}

func handleDeleteKeyResult(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := objective.DeleteKeyResult(db, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func handleUpdateKeyResultOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.DisplayOrder == nil {
			badRequest(c, "display_order is required")
			return
		}
		kr, err := objective.UpdateKeyResultOrder(db, c.Param("id"), *req.DisplayOrder)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, kr)
	}
}

func handleUpdateKeyResultProgress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req progressRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.CurrentValue == nil {
			badRequest(c, "current_value is required")
			return
		}
		kr, err := objective.UpdateKeyResultProgress(db, c.Param("id"), *req.CurrentValue)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, kr)
	}
}
