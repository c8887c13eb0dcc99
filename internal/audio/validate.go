package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// MaxAudioBytes is the hard cap on a single recording upload
	MaxAudioBytes = 10 * 1024 * 1024

	// MaxDurationSeconds is the hard cap on recording length. Voice tasks
	// are single utterances; anything longer is a recording mistake.
	MaxDurationSeconds = 30.0
)

var supportedMIMETypes = map[string]bool{
	"audio/wav":   true,
	"audio/wave":  true,
	"audio/x-wav": true,
	"audio/m4a":   true,
	"audio/mp4":   true,
	"audio/mpeg":  true,
	"audio/aac":   true,
	"audio/ogg":   true,
	"audio/webm":  true,
}

// ValidationResult collects every violation found in an upload's declared
// metadata so a client can fix everything in one round trip
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateAudio checks the declared metadata of a recording before any
// chunk is accepted. All violations are reported, not just the first.
func ValidateAudio(filename string, totalSize int64, estimatedDuration float64, mimeType string) ValidationResult {
	var errs []string

	if filename == "" {
		errs = append(errs, "filename is required")
	}

	mt := strings.ToLower(strings.TrimSpace(mimeType))
	// Strip codec parameters like "audio/webm;codecs=opus"
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if !supportedMIMETypes[mt] {
		errs = append(errs, fmt.Sprintf("unsupported audio type: %s", mimeType))
	}

	if totalSize <= 0 {
		errs = append(errs, "total size must be positive")
	} else if totalSize > MaxAudioBytes {
		errs = append(errs, fmt.Sprintf("audio too large: %d bytes (max %d)", totalSize, MaxAudioBytes))
	}

	if estimatedDuration > MaxDurationSeconds {
		errs = append(errs, fmt.Sprintf("audio too long: %.1fs (max %.0fs)", estimatedDuration, MaxDurationSeconds))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// MIMETypeForFilename guesses the audio MIME type from a filename extension
func MIMETypeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/m4a"
	case ".mp3":
		return "audio/mpeg"
	case ".aac":
		return "audio/aac"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	default:
		return "audio/wav"
	}
}
