package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/summit/internal/period"
	"gorm.io/gorm"
)

type createPeriodRequest struct {
	Alias      string     `json:"alias"`
	TargetDate *time.Time `json:"target_date"`
}

type updatePeriodRequest struct {
	Alias      *string    `json:"alias"`
	TargetDate *time.Time `json:"target_date"`
}

func handleListPeriods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		periods, err := period.ListByNode(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, periods)
	}
}

func handleCreatePeriod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPeriodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		p, err := period.Create(db, period.CreateOpts{
			NodeID:     c.Param("id"),
			Alias:      req.Alias,
			TargetDate: req.TargetDate,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func handleGetPeriod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := period.Get(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func handleUpdatePeriod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updatePeriodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		p, err := period.Update(db, c.Param("id"), period.UpdateOpts{
			Alias:      req.Alias,
			TargetDate: req.TargetDate,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func handleDeletePeriod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := period.Delete(db, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func handleReplicateOne(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := period.ReplicateOne(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func handleReplicateAll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := period.ReplicateAll(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}
