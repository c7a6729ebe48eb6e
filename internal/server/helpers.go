package server

import "strings"

// extractIP picks the client address out of proxy headers, preferring
// the first X-Forwarded-For hop.
func extractIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		if i := strings.IndexByte(forwardedFor, ','); i >= 0 {
			return strings.TrimSpace(forwardedFor[:i])
		}
		return strings.TrimSpace(forwardedFor)
	}
	return realIP
}

// audioContentType returns the MIME type for an audio file extension.
func audioContentType(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp3":
		return "audio/mpeg"
	case "m4a", "m4b", "mp4":
		return "audio/mp4"
	case "ogg", "oga", "opus":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	case "wav":
		return "audio/wav"
	case "aac":
		return "audio/aac"
	default:
		return "application/octet-stream"
	}
}
