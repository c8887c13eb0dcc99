package model

import "time"

// UploadStatus represents the lifecycle stage of a chunked audio upload
type UploadStatus string

const (
	UploadStatusCollecting UploadStatus = "collecting"
	UploadStatusComplete   UploadStatus = "complete"
)

// AudioChunk is one slice of a chunked audio upload
type AudioChunk struct {
	Index       int    `json:"index"`
	TotalChunks int    `json:"total_chunks"`
	Data        []byte `json:"data"`
	Size        int    `json:"size"`
}

// AudioUpload represents one client's attempt to deliver a recording,
// assembled chunk by chunk
type AudioUpload struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Filename     string             `json:"filename"`
	TotalSize    int64              `json:"total_size"`
	TotalChunks  int                `json:"total_chunks"`
	UploadedSize int64              `json:"uploaded_size"`
	Status       UploadStatus       `json:"status"`
	Chunks       map[int]AudioChunk `json:"-"`
	CreatedAt    time.Time          `json:"created_at"`
}

// UploadSnapshot is a read-only view of an upload's progress, without the
// raw chunk payloads
type UploadSnapshot struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	Filename       string       `json:"filename"`
	Status         UploadStatus `json:"status"`
	TotalSize      int64        `json:"total_size"`
	UploadedSize   int64        `json:"uploaded_size"`
	TotalChunks    int          `json:"total_chunks"`
	ReceivedChunks int          `json:"received_chunks"`
	CreatedAt      time.Time    `json:"created_at"`
}
