package validation

import (
	"path/filepath"
	"strings"
)

var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// IsImageFilename reports whether name has one of the image extensions the
// optimizer understands.
func IsImageFilename(name string) bool {
	return AllowedImageTypes[strings.ToLower(filepath.Ext(name))]
}
