package insight

import (
	"path/filepath"
	"strings"
)

// DetectVideoMIME maps a video file's extension to its MIME type. Files
// whose extension is not a known video container are rejected with
// ErrNotVideo before any request is attempted; the payload itself is
// forwarded opaquely and never sniffed.
func DetectVideoMIME(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp4":
		return "video/mp4", nil
	case ".m4v":
		return "video/x-m4v", nil
	case ".mov":
		return "video/quicktime", nil
	case ".webm":
		return "video/webm", nil
	case ".mkv":
		return "video/x-matroska", nil
	case ".avi":
		return "video/x-msvideo", nil
	case ".mpeg", ".mpg":
		return "video/mpeg", nil
	case ".wmv":
		return "video/x-ms-wmv", nil
	case ".flv":
		return "video/x-flv", nil
	case ".3gp":
		return "video/3gpp", nil
	default:
		return "", ErrNotVideo
	}
}
