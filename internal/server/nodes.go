package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/summit/internal/node"
	"gorm.io/gorm"
)

type createNodeRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Color             string `json:"color"`
	OwnerID           string `json:"owner_id"`
	Central           bool   `json:"central"`
	RevenueGenerating bool   `json:"revenue_generating"`
}

type updateNodeRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Color             *string `json:"color"`
	OwnerID           *string `json:"owner_id"`
	Active            *bool   `json:"active"`
	Central           *bool   `json:"central"`
	RevenueGenerating *bool   `json:"revenue_generating"`
}

func handleListNodes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		nodes, err := node.List(db)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, nodes)
	}
}

func handleCreateNode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createNodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		n, err := node.Create(db, node.CreateOpts{
			Name:              req.Name,
			Description:       req.Description,
			Color:             req.Color,
			OwnerID:           req.OwnerID,
			Central:           req.Central,
			RevenueGenerating: req.RevenueGenerating,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, n)
	}
}

func handleGetNode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := node.Get(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, n)
	}
}

func handleUpdateNode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateNodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		n, err := node.Update(db, c.Param("id"), node.UpdateOpts{
			Name:              req.Name,
			Description:       req.Description,
			Color:             req.Color,
			OwnerID:           req.OwnerID,
			Active:            req.Active,
			Central:           req.Central,
			RevenueGenerating: req.RevenueGenerating,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, n)
	}
}

func handleDeleteNode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := node.Delete(db, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}
