package upload

import (
	"mime"
	"path/filepath"
	"strings"
)

// commonTypes covers extensions the platform mime table sometimes
// misses (notably on minimal containers without /etc/mime.types).
var commonTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

// DetectContentType returns the MIME type for a file based on its
// extension, falling back to application/octet-stream.
func DetectContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}
	if contentType, ok := commonTypes[ext]; ok {
		return contentType
	}
	return "application/octet-stream"
}
