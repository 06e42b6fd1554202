package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UploadFile stores a multipart "file" under uploadDir and returns its
// public URL. Filenames are regenerated so a client name can never escape
// the directory.
func UploadFile(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/upload"
		defer handlePanic(c, route)

		file, err := c.FormFile("file")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "No file")
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext == "" {
			ext = ".jpg"
		}
		name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), strings.ToLower(newToken(6)), ext)

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}

		logrus.WithField("file", name).Info("upload stored")
		c.JSON(http.StatusOK, gin.H{"url": "/uploads/" + name})
	}
}

// safeDeleteUpload removes a previously uploaded file referenced by its
// public /uploads/ URL. Anything outside the upload directory is refused.
func safeDeleteUpload(uploadDir, relPath string) error {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")

	if !strings.HasPrefix(cleanRel, "uploads/") {
		// external image reference, nothing to clean up
		return nil
	}
	cleanRel = strings.TrimPrefix(cleanRel, "uploads/")

	cleanBase := filepath.Clean(uploadDir)
	target := filepath.Clean(filepath.Join(cleanBase, filepath.FromSlash(cleanRel)))
	if target == cleanBase || !strings.HasPrefix(target, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload dir: %s", relPath)
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}
