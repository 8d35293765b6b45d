package server

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, uploadDir string) {
	// Stored uploads are served as static files.
	router.Static("/files", uploadDir)

	api := router.Group("/api")

	api.GET("/nodes", handleListNodes(db))
	api.POST("/nodes", handleCreateNode(db))
	api.GET("/nodes/:id", handleGetNode(db))
	api.PUT("/nodes/:id", handleUpdateNode(db))
	api.DELETE("/nodes/:id", handleDeleteNode(db))

	api.GET("/nodes/:id/periods", handleListPeriods(db))
	api.POST("/nodes/:id/periods", handleCreatePeriod(db))
	api.POST("/nodes/:id/periods/replicate-all", handleReplicateAll(db))
	api.GET("/periods/:id", handleGetPeriod(db))
	api.PUT("/periods/:id", handleUpdatePeriod(db))
	api.DELETE("/periods/:id", handleDeletePeriod(db))
	api.POST("/periods/:id/replicate", handleReplicateOne(db))

	api.GET("/objectives", handleListObjectives(db))
	api.POST("/objectives", handleCreateObjective(db))
	api.GET("/objectives/:id", handleGetObjective(db))
	api.PUT("/objectives/:id", handleUpdateObjective(db))
	api.DELETE("/objectives/:id", handleDeleteObjective(db))
	api.PATCH("/objectives/:id/order", handleUpdateObjectiveOrder(db))

	api.GET("/objectives/:id/key-results", handleListKeyResults(db))
	api.POST("/objectives/:id/key-results", handleCreateKeyResult(db))
	api.PUT("/key-results/:id", handleUpdateKeyResult(db))
	api.DELETE("/key-results/:id", handleDeleteKeyResult(db))
	api.PATCH("/key-results/:id/order", handleUpdateKeyResultOrder(db))
	api.PATCH("/key-results/:id/progress", handleUpdateKeyResultProgress(db))

	api.GET("/objectives/:id/tasks", handleListTasks(db))
	api.POST("/objectives/:id/tasks", handleCreateTask(db))
	api.GET("/tasks/:id", handleGetTask(db))
	api.PUT("/tasks/:id", handleUpdateTask(db))
	api.DELETE("/tasks/:id", handleDeleteTask(db))
	api.PATCH("/tasks/:id/status", handleUpdateTaskStatus(db))
	api.PATCH("/tasks/:id/priority-score", handleUpdateTaskPriorityScore(db))

	api.GET("/tasks/:id/comments", handleListComments(db))
	api.POST("/tasks/:id/comments", handleCreateComment(db))
	api.PUT("/comments/:id", handleUpdateComment(db))
	api.DELETE("/comments/:id", handleDeleteComment(db))

	api.GET("/tasks/:id/deliverables", handleListDeliverables(db))
	api.POST("/tasks/:id/deliverables", handleAddDeliverable(db))
	api.DELETE("/tasks/:id/deliverables/:index", handleRemoveDeliverable(db))
	api.POST("/tasks/:id/deliverables/promote", handlePromoteAttachment(db))
	api.GET("/tasks/:id/can-complete", handleCanComplete(db))

	api.GET("/projects", handleListProjects(db))
	api.POST("/projects", handleCreateProject(db))
	api.GET("/projects/:id", handleGetProject(db))
	api.PUT("/projects/:id", handleUpdateProject(db))
	api.DELETE("/projects/:id", handleDeleteProject(db))

	api.POST("/uploads", handleUpload(uploadDir))
}
