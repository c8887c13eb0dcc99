package stt

import "context"

// MockProvider is a deterministic STT provider for offline operation and
// tests. It returns the configured result for any audio, or Err if set.
type MockProvider struct {
	Text       string
	Language   string
	Confidence float64
	Duration   float64
	Err        error
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// Transcribe returns the canned result
func (p *MockProvider) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if p.Err != nil {
		return nil, p.Err
	}

	lang := p.Language
	if lang == "" {
		if req.Language != "" && req.Language != "auto" {
			lang = req.Language
		} else {
			lang = "fr"
		}
	}

	return &Result{
		Text:       p.Text,
		Language:   lang,
		Confidence: p.Confidence,
		Duration:   p.Duration,
		Provider:   p.Name(),
	}, nil
}
