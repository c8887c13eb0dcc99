package model

import "time"

// TranscriptionRequest records the intent to transcribe an assembled upload.
// It carries hints only; the STT provider has the last word on language.
type TranscriptionRequest struct {
	ID        string    `json:"id"`
	AudioID   string    `json:"audio_id"`
	Language  string    `json:"language"` // ISO code or "auto"
	Provider  string    `json:"provider"`
	StartedAt time.Time `json:"started_at"`
}

// TranscriptionResult is one completed speech-to-text outcome. It appears
// atomically on completion and is immutable afterwards.
type TranscriptionResult struct {
	ID         string    `json:"id"`
	AudioID    string    `json:"audio_id"`
	Text       string    `json:"text"`
	Language   string    `json:"language"`
	Confidence float64   `json:"confidence"`
	Duration   float64   `json:"duration_seconds"`
	Provider   string    `json:"provider"`
	CreatedAt  time.Time `json:"created_at"`
}
