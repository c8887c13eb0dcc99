package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"famtask/internal/audio"
	"famtask/internal/model"
	"famtask/internal/pipeline"
	"famtask/internal/utils"
)

// TranscribeRequest is the body of POST /api/uploads/:id/transcribe
type TranscribeRequest struct {
	Language string `json:"language"`
}

// transcribeUpload handles POST /api/uploads/:id/transcribe
func transcribeUpload(c *gin.Context) {
	uploadID := c.Param("id")

	var req TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = "auto"
	}

	result, err := pipe.TranscribeUpload(c.Request.Context(), uploadID, req.Language)
	if err != nil {
		log.Printf("[STT] Transcription failed for upload %s: %v", uploadID, err)
		utils.Error(c, http.StatusBadGateway, "transcription failed, try again")
		return
	}

	utils.Success(c, gin.H{"transcription": result})
}

// getTranscription handles GET /api/transcriptions/:id
func getTranscription(c *gin.Context) {
	result, ok := pipe.Transcriptions.Get(c.Param("id"))
	if !ok {
		// Absent means not ready or failed; the stage does not distinguish
		utils.Error(c, http.StatusNotFound, "transcription not found")
		return
	}

	utils.Success(c, gin.H{"transcription": result})
}

// ExtractRequest is the body of POST /api/transcriptions/:id/extract
type ExtractRequest struct {
	Household model.HouseholdContext `json:"household" binding:"required"`
}

// extractTranscription handles POST /api/transcriptions/:id/extract
func extractTranscription(c *gin.Context) {
	transcriptionID := c.Param("id")

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "household context is required")
		return
	}

	extraction, err := pipe.Extract(c.Request.Context(), transcriptionID, req.Household)
	if err != nil {
		log.Printf("[Extract] Extraction failed for transcription %s: %v", transcriptionID, err)
		utils.Error(c, http.StatusBadGateway, "extraction failed, try again")
		return
	}

	utils.Success(c, gin.H{"extraction": extraction})
}

// getExtraction handles GET /api/extractions/:id
func getExtraction(c *gin.Context) {
	extraction, ok := pipe.Extractions.Get(c.Param("id"))
	if !ok {
		utils.Error(c, http.StatusNotFound, "extraction not found")
		return
	}

	utils.Success(c, gin.H{"extraction": extraction})
}

// GeneratePreviewRequest is the body of POST /api/extractions/:id/preview
type GeneratePreviewRequest struct {
	Household model.HouseholdContext `json:"household" binding:"required"`
	Workload  model.WorkloadSnapshot `json:"workload"`
}

// generatePreview handles POST /api/extractions/:id/preview
func generatePreview(c *gin.Context) {
	extractionID := c.Param("id")

	var req GeneratePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "household context is required")
		return
	}

	preview, err := pipe.GeneratePreview(extractionID, req.Household, req.Workload)
	if err != nil {
		utils.Error(c, http.StatusNotFound, err.Error())
		return
	}

	utils.Success(c, gin.H{"preview": preview})
}

// VoiceTaskRequest is the body of POST /api/voice/tasks, the full-pipeline
// shortcut for pre-assembled audio
type VoiceTaskRequest struct {
	UserID    string                 `json:"user_id" binding:"required"`
	Filename  string                 `json:"filename" binding:"required"`
	Audio     []byte                 `json:"audio" binding:"required"`
	Language  string                 `json:"language"`
	Household model.HouseholdContext `json:"household" binding:"required"`
	Workload  model.WorkloadSnapshot `json:"workload"`
}

// voiceTask handles POST /api/voice/tasks
func voiceTask(c *gin.Context) {
	var req VoiceTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "user_id, filename, audio and household are required")
		return
	}

	validation := audio.ValidateAudio(req.Filename, int64(len(req.Audio)), 0, audio.MIMETypeForFilename(req.Filename))
	if !validation.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid audio",
			"errors":  validation.Errors,
		})
		return
	}

	if req.Language == "" {
		req.Language = "auto"
	}

	preview, err := pipe.Run(c.Request.Context(), pipeline.RunInput{
		Filename:  req.Filename,
		Audio:     req.Audio,
		Language:  req.Language,
		Household: req.Household,
		Workload:  req.Workload,
	})
	if err != nil {
		log.Printf("[Pipeline] Voice task failed for user %s: %v", req.UserID, err)
		utils.Error(c, http.StatusBadGateway, "voice task failed, try again")
		return
	}

	utils.Success(c, gin.H{"preview": preview})
}
