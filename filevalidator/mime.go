package filevalidator

import (
	"strings"
	"sync"
)

// MatchAccept reports whether mimeType satisfies an accept pattern.
//
//   - "*" matches every type, including an empty one.
//   - "major/*" matches when the major types are equal.
//   - any other pattern matches when it occurs anywhere in mimeType, so
//     "image/png" also matches "image/png-extended".
func MatchAccept(pattern, mimeType string) bool {
	if pattern == AcceptAll {
		return true
	}
	if strings.HasSuffix(pattern, "/*") {
		return MajorType(pattern) == MajorType(mimeType)
	}
	return strings.Contains(mimeType, pattern)
}

// MajorType returns the part of a MIME type before the first slash
func MajorType(mimeType string) string {
	major, _, _ := strings.Cut(mimeType, "/")
	return major
}

// MinorType returns the part of a MIME type after the first slash
func MinorType(mimeType string) string {
	_, minor, _ := strings.Cut(mimeType, "/")
	return minor
}

var (
	extensionMu sync.RWMutex

	// Common extension to MIME type mapping
	extensionToMimeType = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".svg":  "image/svg+xml",
		".tiff": "image/tiff",
		".tif":  "image/tiff",
		".bmp":  "image/bmp",
		".ico":  "image/x-icon",
		".heic": "image/heic",
		".heif": "image/heif",
		".avif": "image/avif",

		".pdf":  "application/pdf",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".xls":  "application/vnd.ms-excel",
		".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		".ppt":  "application/vnd.ms-powerpoint",
		".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		".txt":  "text/plain",
		".csv":  "text/csv",
		".rtf":  "text/rtf",
		".json": "application/json",
		".zip":  "application/zip",
		".gz":   "application/gzip",
		".tar":  "application/x-tar",

		".mp3":  "audio/mpeg",
		".wav":  "audio/wav",
		".ogg":  "audio/ogg",
		".flac": "audio/flac",
		".m4a":  "audio/mp4",

		".mp4":  "video/mp4",
		".webm": "video/webm",
		".mov":  "video/quicktime",
		".avi":  "video/x-msvideo",

		".html": "text/html",
		".htm":  "text/html",
		".css":  "text/css",
		".js":   "text/javascript",
		".xml":  "text/xml",
		".md":   "text/markdown",
	}
)

// MIMETypeForExtension returns the MIME type for a given file extension
// Returns empty string if the extension is not recognized
func MIMETypeForExtension(ext string) string {
	extensionMu.RLock()
	defer extensionMu.RUnlock()
	return extensionToMimeType[ext]
}

// AddCustomMediaTypeMapping adds a custom file extension to MIME type mapping
func AddCustomMediaTypeMapping(ext string, mimeType string) {
	extensionMu.Lock()
	defer extensionMu.Unlock()
	extensionToMimeType[ext] = mimeType
}
