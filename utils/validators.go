package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// IsAllowedImageFile reports whether the filename carries one of the
// accepted image extensions.
func IsAllowedImageFile(filename string) bool {
	return allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename reduces an uploaded filename to a safe basename:
// no path separators, no characters outside [A-Za-z0-9_.-], no way to
// point outside the upload directory.
func SanitizeFilename(filename string) string {
	// Strip any directory component, whatever the client OS used.
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)

	filename = strings.ReplaceAll(filename, " ", "_")
	filename = unsafeFilenameChars.ReplaceAllString(filename, "")
	filename = strings.Trim(filename, "._-")

	return filename
}
