// Package upload receives multipart files and stores them under the
// configured upload directory, returning the descriptor used to populate
// attachment and deliverable drafts.
package upload

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StoredFile describes a stored upload.
type StoredFile struct {
	URL          string `json:"url"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// Save writes the uploaded file into dir under a uuid-based name and
// returns its descriptor. The served URL is /files/<name>.
func Save(c *gin.Context, dir string, fh *multipart.FileHeader) (*StoredFile, error) {
	if fh == nil {
		return nil, fmt.Errorf("upload: file is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("upload: create dir %s: %w", dir, err)
	}

	name := uuid.NewString() + filepath.Ext(fh.Filename)
	dst := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return nil, fmt.Errorf("upload: save %s: %w", fh.Filename, err)
	}

	return &StoredFile{
		URL:          "/files/" + name,
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         fh.Size,
	}, nil
}
