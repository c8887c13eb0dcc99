package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"famtask/internal/audio"
	"famtask/internal/extract"
	"famtask/internal/model"
	"famtask/internal/stt"
	"famtask/internal/taskgen"
	"famtask/internal/transcribe"
)

// Pipeline wires the four stages together around the two collaborator
// boundaries (STT and extraction). Each stage remains addressable on its
// own; Run is the full shortcut for pre-assembled audio. A failed
// collaborator call leaves the relevant store untouched, so the caller can
// retry the single failed stage without re-uploading anything.
type Pipeline struct {
	STT       stt.Provider
	Extractor extract.Extractor

	Uploads        *audio.UploadStore
	Transcriptions *transcribe.Store
	Extractions    *extract.Store
	Previews       *taskgen.PreviewStore

	Now func() time.Time
}

// New creates a pipeline with fresh stores
func New(provider stt.Provider, extractor extract.Extractor) *Pipeline {
	return &Pipeline{
		STT:            provider,
		Extractor:      extractor,
		Uploads:        audio.NewUploadStore(),
		Transcriptions: transcribe.NewStore(),
		Extractions:    extract.NewStore(),
		Previews:       taskgen.NewPreviewStore(),
		Now:            time.Now,
	}
}

// Transcribe runs the STT collaborator on assembled audio and installs the
// result on success only
func (p *Pipeline) Transcribe(ctx context.Context, audioID, filename string, audioBytes []byte, language string) (model.TranscriptionResult, error) {
	id := uuid.New().String()
	p.Transcriptions.Start(model.TranscriptionRequest{
		ID:        id,
		AudioID:   audioID,
		Language:  language,
		Provider:  p.STT.Name(),
		StartedAt: p.Now(),
	})

	res, err := p.STT.Transcribe(ctx, stt.Request{
		AudioID:  audioID,
		Audio:    audioBytes,
		Filename: filename,
		Language: language,
	})
	if err != nil {
		p.Transcriptions.Discard(id)
		return model.TranscriptionResult{}, fmt.Errorf("transcription failed: %w", err)
	}

	result := model.TranscriptionResult{
		ID:         id,
		AudioID:    audioID,
		Text:       res.Text,
		Language:   res.Language,
		Confidence: res.Confidence,
		Duration:   res.Duration,
		Provider:   res.Provider,
		CreatedAt:  p.Now(),
	}
	p.Transcriptions.Complete(result)

	log.Printf("[Pipeline] Transcribed audio %s: %d chars, confidence=%.2f", audioID, len(res.Text), res.Confidence)
	return result, nil
}

// TranscribeUpload assembles a completed upload and transcribes it
func (p *Pipeline) TranscribeUpload(ctx context.Context, uploadID, language string) (model.TranscriptionResult, error) {
	snap, ok := p.Uploads.GetUploadStatus(uploadID)
	if !ok {
		return model.TranscriptionResult{}, fmt.Errorf("upload %s not found", uploadID)
	}

	audioBytes := p.Uploads.AssembleChunks(uploadID)
	if audioBytes == nil {
		return model.TranscriptionResult{}, fmt.Errorf("upload %s is not complete (%s)", uploadID, snap.Status)
	}

	return p.Transcribe(ctx, uploadID, snap.Filename, audioBytes, language)
}

// Extract interprets a completed transcription against the household
// context. The slot is reserved first; the record only appears when the
// collaborator call succeeds.
func (p *Pipeline) Extract(ctx context.Context, transcriptionID string, household model.HouseholdContext) (model.SemanticExtraction, error) {
	tr, ok := p.Transcriptions.Get(transcriptionID)
	if !ok {
		return model.SemanticExtraction{}, fmt.Errorf("transcription %s not found", transcriptionID)
	}

	id := uuid.New().String()
	p.Extractions.Start(id, transcriptionID)

	text := extract.CleanTranscript(tr.Text)
	ex, err := p.Extractor.Extract(ctx, transcriptionID, text, tr.Language, household)
	if err != nil {
		p.Extractions.Discard(id)
		return model.SemanticExtraction{}, fmt.Errorf("extraction failed: %w", err)
	}

	ex.ID = id
	p.Extractions.Complete(*ex)

	log.Printf("[Pipeline] Extracted %s: category=%s urgency=%s confidence=%.2f warnings=%d",
		id, ex.Category, ex.Urgency, ex.OverallConfidence, len(ex.Warnings))
	return *ex, nil
}

// GeneratePreview builds and stores a task preview from a completed
// extraction
func (p *Pipeline) GeneratePreview(extractionID string, household model.HouseholdContext, workload model.WorkloadSnapshot) (model.TaskPreview, error) {
	ex, ok := p.Extractions.Get(extractionID)
	if !ok {
		return model.TaskPreview{}, fmt.Errorf("extraction %s not found", extractionID)
	}

	preview := taskgen.GeneratePreview(ex, household, workload, p.Now())
	p.Previews.Add(preview)

	log.Printf("[Pipeline] Generated preview %s: %q weight=%.1f assignee=%s",
		preview.ID, preview.Title, preview.ChargeWeight, preview.AssigneeID)
	return preview, nil
}

// RunInput is everything the full shortcut needs for pre-assembled audio
type RunInput struct {
	AudioID   string
	Filename  string
	Audio     []byte
	Language  string
	Household model.HouseholdContext
	Workload  model.WorkloadSnapshot
}

// Run drives all stages in one call: STT, extraction, preview generation.
// Each stage's record lands in its store, so a later failure never loses
// earlier work.
func (p *Pipeline) Run(ctx context.Context, in RunInput) (model.TaskPreview, error) {
	if in.AudioID == "" {
		in.AudioID = uuid.New().String()
	}

	tr, err := p.Transcribe(ctx, in.AudioID, in.Filename, in.Audio, in.Language)
	if err != nil {
		return model.TaskPreview{}, err
	}

	ex, err := p.Extract(ctx, tr.ID, in.Household)
	if err != nil {
		return model.TaskPreview{}, err
	}

	return p.GeneratePreview(ex.ID, in.Household, in.Workload)
}
