package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"famtask/internal/audio"
	"famtask/internal/model"
	"famtask/internal/utils"
)

// InitUploadRequest is the body of POST /api/uploads
type InitUploadRequest struct {
	UserID            string  `json:"user_id" binding:"required"`
	Filename          string  `json:"filename" binding:"required"`
	TotalSize         int64   `json:"total_size" binding:"required"`
	EstimatedDuration float64 `json:"estimated_duration"`
	MimeType          string  `json:"mime_type"`
}

// initUpload handles POST /api/uploads
func initUpload(c *gin.Context) {
	var req InitUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "user_id, filename and total_size are required")
		return
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = audio.MIMETypeForFilename(req.Filename)
	}

	validation := audio.ValidateAudio(req.Filename, req.TotalSize, req.EstimatedDuration, mimeType)
	if !validation.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid audio metadata",
			"errors":  validation.Errors,
		})
		return
	}

	uploadID := uuid.New().String()
	pipe.Uploads.InitializeUpload(uploadID, req.UserID, req.Filename, req.TotalSize)

	log.Printf("[Audio] Upload initialized: %s (%s, %d bytes)", uploadID, req.Filename, req.TotalSize)

	utils.Success(c, gin.H{
		"upload_id": uploadID,
		"status":    model.UploadStatusCollecting,
	})
}

// AddChunkRequest is the body of POST /api/uploads/:id/chunks. Data is
// base64-encoded in JSON, which []byte handles natively.
type AddChunkRequest struct {
	Index       *int   `json:"index" binding:"required"`
	TotalChunks int    `json:"total_chunks" binding:"required"`
	Data        []byte `json:"data" binding:"required"`
}

// addChunk handles POST /api/uploads/:id/chunks
func addChunk(c *gin.Context) {
	uploadID := c.Param("id")

	var req AddChunkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "index, total_chunks and data are required")
		return
	}

	if _, ok := pipe.Uploads.GetUploadStatus(uploadID); !ok {
		utils.Error(c, http.StatusNotFound, "upload not found")
		return
	}

	err := pipe.Uploads.AddChunk(uploadID, model.AudioChunk{
		Index:       *req.Index,
		TotalChunks: req.TotalChunks,
		Data:        req.Data,
	})
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, _ := pipe.Uploads.GetUploadStatus(uploadID)
	utils.Success(c, gin.H{
		"upload_id":       snap.ID,
		"status":          snap.Status,
		"received_chunks": snap.ReceivedChunks,
		"total_chunks":    snap.TotalChunks,
		"uploaded_size":   snap.UploadedSize,
	})
}

// getUploadStatus handles GET /api/uploads/:id
func getUploadStatus(c *gin.Context) {
	snap, ok := pipe.Uploads.GetUploadStatus(c.Param("id"))
	if !ok {
		utils.Error(c, http.StatusNotFound, "upload not found")
		return
	}

	utils.Success(c, gin.H{
		"upload_id":       snap.ID,
		"user_id":         snap.UserID,
		"filename":        snap.Filename,
		"status":          snap.Status,
		"total_size":      snap.TotalSize,
		"uploaded_size":   snap.UploadedSize,
		"received_chunks": snap.ReceivedChunks,
		"total_chunks":    snap.TotalChunks,
		"created_at":      snap.CreatedAt,
	})
}
