package stt

import "context"

// Request carries one transcription call to a provider. Audio is the
// assembled recording; the provider does not retain it past the call.
type Request struct {
	AudioID  string
	Audio    []byte
	Filename string
	Language string // ISO code or "auto"
}

// Provider defines the interface for speech-to-text providers
type Provider interface {
	// Transcribe transcribes the audio and returns the result
	Transcribe(ctx context.Context, req Request) (*Result, error)

	// Name returns the name of the provider (e.g., "fpt", "whisper")
	Name() string
}
