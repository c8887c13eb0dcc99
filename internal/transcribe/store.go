package transcribe

import (
	"sync"
	"time"

	"famtask/internal/model"
)

// Store holds transcription intents and completed results. A result only
// becomes readable once Complete installs it; a failed provider call
// leaves nothing behind, so "not found" means "not ready or failed".
type Store struct {
	mu      sync.Mutex
	pending map[string]model.TranscriptionRequest
	results map[string]*model.TranscriptionResult
	byAudio map[string]string // source audio id -> result id
}

// NewStore creates an empty transcription store
func NewStore() *Store {
	return &Store{
		pending: make(map[string]model.TranscriptionRequest),
		results: make(map[string]*model.TranscriptionResult),
		byAudio: make(map[string]string),
	}
}

// Start records the intent to transcribe. It does not produce a readable
// result.
func (s *Store) Start(req model.TranscriptionRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.StartedAt.IsZero() {
		req.StartedAt = time.Now()
	}
	s.pending[req.ID] = req
}

// Complete installs the final result, keyed by its own id and indexed by
// source audio id. The pending intent, if any, is consumed.
func (s *Store) Complete(result model.TranscriptionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	s.results[result.ID] = &result
	if result.AudioID != "" {
		s.byAudio[result.AudioID] = result.ID
	}
	delete(s.pending, result.ID)
}

// Discard drops a pending intent after a failed provider call, so
// abandoned reservations do not pile up. Unknown ids are a no-op.
func (s *Store) Discard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

// Get returns the completed result for the id, or false if absent
func (s *Store) Get(id string) (model.TranscriptionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.results[id]
	if !ok {
		return model.TranscriptionResult{}, false
	}
	return *res, true
}

// GetByAudio returns the completed result for a source audio id, or false
func (s *Store) GetByAudio(audioID string) (model.TranscriptionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byAudio[audioID]
	if !ok {
		return model.TranscriptionResult{}, false
	}
	res, ok := s.results[id]
	if !ok {
		return model.TranscriptionResult{}, false
	}
	return *res, true
}
