package stt

// Result represents the result of a speech-to-text transcription
type Result struct {
	Text        string  // The transcribed text
	Language    string  // Language the provider recognized, if reported
	Confidence  float64 // Confidence score (0.0-1.0), may be 0 if not provided
	Duration    float64 // Audio duration in seconds, may be 0 if not provided
	Provider    string  // The provider used (e.g., "fpt", "whisper")
	RawResponse string  // Raw response from the provider (for debugging/logging)
}
