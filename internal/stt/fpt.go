package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// FPTProvider implements STT using FPT.AI Speech-to-Text API
type FPTProvider struct {
	apiKey string
	url    string
	client *http.Client
}

// NewFPTProvider creates a new FPT STT provider
func NewFPTProvider(apiKey, url string) *FPTProvider {
	return &FPTProvider{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

// Name returns the provider name
func (p *FPTProvider) Name() string {
	return "fpt"
}

// FPTSTTResponse represents FPT.AI STT API response
type FPTSTTResponse struct {
	Hypotheses []struct {
		Utterance  string  `json:"utterance"`
		Confidence float64 `json:"confidence"`
	} `json:"hypotheses"`
	ErrorCode int    `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Transcribe sends the assembled audio to FPT.AI STT API and returns the
// transcript
func (p *FPTProvider) Transcribe(ctx context.Context, sreq Request) (*Result, error) {
	log.Printf("[FPT STT] Processing audio %s: size=%d bytes, file=%s",
		sreq.AudioID, len(sreq.Audio), sreq.Filename)

	// Very small payloads are empty or corrupted recordings
	if len(sreq.Audio) < 1000 {
		return nil, fmt.Errorf("audio too small (%d bytes), may be empty or corrupted", len(sreq.Audio))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(sreq.Audio))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("api-key", p.apiKey)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to FPT.AI: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[FPT STT] API error: Status %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("FPT.AI API returned status %d: %s", resp.StatusCode, string(body))
	}

	var sttResp FPTSTTResponse
	if err := json.Unmarshal(body, &sttResp); err != nil {
		log.Printf("[FPT STT] Failed to parse response. Raw body: %s", string(body))
		return nil, fmt.Errorf("failed to parse FPT.AI response: %w", err)
	}

	if sttResp.ErrorCode != 0 {
		return nil, fmt.Errorf("FPT.AI API error %d: %s", sttResp.ErrorCode, sttResp.Message)
	}

	if len(sttResp.Hypotheses) == 0 {
		log.Printf("[FPT STT] No hypotheses returned. Full response: %s", string(body))
		return nil, fmt.Errorf("no speech detected in audio")
	}

	// First hypothesis is the best one
	hyp := sttResp.Hypotheses[0]
	text := strings.TrimSpace(hyp.Utterance)
	if text == "" {
		return nil, fmt.Errorf("empty transcript returned")
	}

	log.Printf("[FPT STT] Transcription successful: confidence=%.2f, length=%d", hyp.Confidence, len(text))

	lang := sreq.Language
	if lang == "" || lang == "auto" {
		lang = "vi" // FPT.AI only does Vietnamese
	}

	return &Result{
		Text:        text,
		Language:    lang,
		Confidence:  hyp.Confidence,
		Provider:    p.Name(),
		RawResponse: string(body),
	}, nil
}
