package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAudioOK(t *testing.T) {
	res := ValidateAudio("note.m4a", 200_000, 12.5, "audio/m4a")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateAudioStripsCodecParams(t *testing.T) {
	res := ValidateAudio("note.webm", 1000, 5, "audio/webm;codecs=opus")
	assert.True(t, res.Valid)
}

func TestValidateAudioCollectsAllViolations(t *testing.T) {
	res := ValidateAudio("", MaxAudioBytes+1, MaxDurationSeconds+1, "video/mp4")
	assert.False(t, res.Valid)
	// One violation per rule, so the client fixes everything in one round trip
	assert.Len(t, res.Errors, 4)
}

func TestValidateAudioRejectsNonPositiveSize(t *testing.T) {
	res := ValidateAudio("note.wav", 0, 3, "audio/wav")
	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 1)
}

func TestMIMETypeForFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"a.wav", "audio/wav"},
		{"a.m4a", "audio/m4a"},
		{"a.MP3", "audio/mpeg"},
		{"a.ogg", "audio/ogg"},
		{"a.webm", "audio/webm"},
		{"a.bin", "audio/wav"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MIMETypeForFilename(tt.filename), tt.filename)
	}
}
