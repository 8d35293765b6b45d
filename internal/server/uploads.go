package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/summit/internal/upload"
)

func handleUpload(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "multipart field \"file\" is required")
			return
		}
		stored, err := upload.Save(c, uploadDir, fh)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, stored)
	}
}
