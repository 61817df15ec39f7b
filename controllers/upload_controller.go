package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Tinnitussen/DAT250/utils"
)

type UploadController struct {
	uploadsDir string
}

func NewUploadController(uploadsDir string) *UploadController {
	return &UploadController{uploadsDir: uploadsDir}
}

// ServeUpload returns a previously stored image. Filenames are
// sanitized the same way as at upload time, so a traversal attempt
// can only ever miss.
func (uc *UploadController) ServeUpload(c *gin.Context) {
	filename := utils.SanitizeFilename(c.Param("filename"))
	if filename == "" {
		utils.SendError(c, http.StatusNotFound, "File not found")
		return
	}

	path := filepath.Join(uc.uploadsDir, filename)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		utils.SendError(c, http.StatusNotFound, "File not found")
		return
	}

	c.File(path)
}
