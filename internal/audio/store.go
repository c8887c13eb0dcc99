package audio

import (
	"fmt"
	"sync"
	"time"

	"famtask/internal/model"
)

// UploadStore holds in-flight chunked uploads, keyed by upload id. All
// access goes through the mutex; reads hand out copies so callers never
// observe a chunk arriving mid-read.
type UploadStore struct {
	mu      sync.Mutex
	uploads map[string]*model.AudioUpload
}

// NewUploadStore creates an empty upload store
func NewUploadStore() *UploadStore {
	return &UploadStore{
		uploads: make(map[string]*model.AudioUpload),
	}
}

// InitializeUpload registers a new upload in collecting status with zero
// chunks. Re-initializing an existing id resets it (last writer wins): the
// client retrying an upload from scratch is far more common than two
// clients colliding on an id, so a reset beats a rejection here.
func (s *UploadStore) InitializeUpload(uploadID, userID, filename string, totalSize int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads[uploadID] = &model.AudioUpload{
		ID:        uploadID,
		UserID:    userID,
		Filename:  filename,
		TotalSize: totalSize,
		Status:    model.UploadStatusCollecting,
		Chunks:    make(map[int]model.AudioChunk),
		CreatedAt: time.Now(),
	}
}

// AddChunk stores the chunk at its index, replacing any previous chunk
// there, and recomputes uploaded size and status. Adding a chunk for an
// unknown upload id is a no-op; callers check the status afterwards.
// A chunk whose index is out of range, or whose total-chunk count
// disagrees with previously received chunks, is a caller error.
func (s *UploadStore) AddChunk(uploadID string, chunk model.AudioChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	up, ok := s.uploads[uploadID]
	if !ok {
		return nil
	}

	if chunk.TotalChunks <= 0 {
		return fmt.Errorf("total_chunks must be positive, got %d", chunk.TotalChunks)
	}
	if chunk.Index < 0 || chunk.Index >= chunk.TotalChunks {
		return fmt.Errorf("chunk index %d out of range [0,%d)", chunk.Index, chunk.TotalChunks)
	}
	if up.TotalChunks != 0 && up.TotalChunks != chunk.TotalChunks {
		return fmt.Errorf("chunk declares %d total chunks, upload already declared %d", chunk.TotalChunks, up.TotalChunks)
	}

	up.TotalChunks = chunk.TotalChunks
	chunk.Size = len(chunk.Data)
	up.Chunks[chunk.Index] = chunk

	var size int64
	for _, c := range up.Chunks {
		size += int64(c.Size)
	}
	up.UploadedSize = size

	if len(up.Chunks) == up.TotalChunks {
		up.Status = model.UploadStatusComplete
	}

	return nil
}

// AssembleChunks concatenates the chunks strictly in index order,
// regardless of arrival order. Returns nil if the upload is unknown or not
// yet complete. Assembly does not mutate the upload, so it may be repeated.
func (s *UploadStore) AssembleChunks(uploadID string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	up, ok := s.uploads[uploadID]
	if !ok || up.Status != model.UploadStatusComplete {
		return nil
	}

	buf := make([]byte, 0, up.UploadedSize)
	for i := 0; i < up.TotalChunks; i++ {
		buf = append(buf, up.Chunks[i].Data...)
	}
	return buf
}

// GetUploadStatus returns a snapshot of the upload's progress, or false if
// the id is unknown
func (s *UploadStore) GetUploadStatus(uploadID string) (model.UploadSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	up, ok := s.uploads[uploadID]
	if !ok {
		return model.UploadSnapshot{}, false
	}

	return model.UploadSnapshot{
		ID:             up.ID,
		UserID:         up.UserID,
		Filename:       up.Filename,
		Status:         up.Status,
		TotalSize:      up.TotalSize,
		UploadedSize:   up.UploadedSize,
		TotalChunks:    up.TotalChunks,
		ReceivedChunks: len(up.Chunks),
		CreatedAt:      up.CreatedAt,
	}, true
}
