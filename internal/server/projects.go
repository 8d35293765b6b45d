package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/summit/internal/project"
	"gorm.io/gorm"
)

type createProjectRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	ObjectiveIDs []string `json:"objective_ids"`
}

type updateProjectRequest struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Status       *string   `json:"status"`
	ObjectiveIDs *[]string `json:"objective_ids"`
}

func handleListProjects(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := project.List(db)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
	}
}

func handleCreateProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		p, err := project.Create(db, project.CreateOpts{
			Name:         req.Name,
			Description:  req.Description,
			Status:       req.Status,
			ObjectiveIDs: req.ObjectiveIDs,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func handleGetProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := project.Get(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func handleUpdateProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		p, err := project.Update(db, c.Param("id"), project.UpdateOpts{
			Name:         req.Name,
			Description:  req.Description,
			Status:       req.Status,
			ObjectiveIDs: req.ObjectiveIDs,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func handleDeleteProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := project.Delete(db, id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}
