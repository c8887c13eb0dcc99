package extract

import (
	"sync"
	"time"

	"famtask/internal/model"
)

// Store holds semantic extractions. Start reserves an id for a
// transcription; the extraction only becomes readable once Complete fills
// it, so a failed LLM call leaves nothing half-written.
type Store struct {
	mu              sync.Mutex
	reserved        map[string]string // extraction id -> transcription id
	extractions     map[string]*model.SemanticExtraction
	byTranscription map[string]string // transcription id -> extraction id
}

// NewStore creates an empty extraction store
func NewStore() *Store {
	return &Store{
		reserved:        make(map[string]string),
		extractions:     make(map[string]*model.SemanticExtraction),
		byTranscription: make(map[string]string),
	}
}

// Start reserves the extraction slot for a transcription
func (s *Store) Start(extractionID, transcriptionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reserved[extractionID] = transcriptionID
}

// Complete installs the finished extraction and consumes the reservation
func (s *Store) Complete(ex model.SemanticExtraction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now()
	}
	s.extractions[ex.ID] = &ex
	if ex.TranscriptionID != "" {
		s.byTranscription[ex.TranscriptionID] = ex.ID
	}
	delete(s.reserved, ex.ID)
}

// Discard drops a reservation after a failed extractor call, so
// abandoned slots do not pile up. Unknown ids are a no-op.
func (s *Store) Discard(extractionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reserved, extractionID)
}

// Get returns the completed extraction, or false if absent or still
// pending
func (s *Store) Get(id string) (model.SemanticExtraction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex, ok := s.extractions[id]
	if !ok {
		return model.SemanticExtraction{}, false
	}
	return *ex, true
}

// GetByTranscription returns the completed extraction for a transcription
func (s *Store) GetByTranscription(transcriptionID string) (model.SemanticExtraction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byTranscription[transcriptionID]
	if !ok {
		return model.SemanticExtraction{}, false
	}
	ex, ok := s.extractions[id]
	if !ok {
		return model.SemanticExtraction{}, false
	}
	return *ex, true
}
