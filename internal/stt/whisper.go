package stt

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// WhisperProvider implements STT using OpenAI's Whisper transcription API
type WhisperProvider struct {
	client *openai.Client
}

// NewWhisperProvider creates a new Whisper STT provider
func NewWhisperProvider(apiKey string) *WhisperProvider {
	return &WhisperProvider{
		client: openai.NewClient(apiKey),
	}
}

// Name returns the provider name
func (p *WhisperProvider) Name() string {
	return "whisper"
}

// Transcribe sends the assembled audio to the Whisper API
func (p *WhisperProvider) Transcribe(ctx context.Context, sreq Request) (*Result, error) {
	log.Printf("[Whisper STT] Processing audio %s: size=%d bytes, file=%s",
		sreq.AudioID, len(sreq.Audio), sreq.Filename)

	if len(sreq.Audio) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(sreq.Audio),
		FilePath: sreq.Filename,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	// "auto" means let Whisper detect the language itself
	if sreq.Language != "" && sreq.Language != "auto" {
		req.Language = sreq.Language
	}

	resp, err := p.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("whisper API error: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("empty transcript returned")
	}

	// Whisper reports per-segment log probabilities rather than a single
	// score; average them into a rough confidence.
	confidence := 0.0
	if len(resp.Segments) > 0 {
		sum := 0.0
		for _, seg := range resp.Segments {
			sum += seg.AvgLogprob
		}
		avg := sum / float64(len(resp.Segments))
		confidence = clamp01(1.0 + avg)
	}

	log.Printf("[Whisper STT] Transcription successful: language=%s, duration=%.1fs, length=%d",
		resp.Language, resp.Duration, len(text))

	return &Result{
		Text:       text,
		Language:   resp.Language,
		Confidence: confidence,
		Duration:   resp.Duration,
		Provider:   p.Name(),
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
