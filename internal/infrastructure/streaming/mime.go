package streaming

import (
	"path/filepath"
	"strings"
)

// videoMIMETypes maps file extensions to declared content types. Unknown
// extensions fall back to video/mp4.
var videoMIMETypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogg":  "video/ogg",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
}

const defaultMIMEType = "video/mp4"

// ContentTypeFor returns the declared content type for a media file path.
func ContentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := videoMIMETypes[ext]; ok {
		return mt
	}
	return defaultMIMEType
}
