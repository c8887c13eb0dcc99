package api

import "github.com/gin-gonic/gin"

// RegisterRoutes registers all API routes
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/uploads", initUpload)
	api.POST("/uploads/:id/chunks", addChunk)
	api.GET("/uploads/:id", getUploadStatus)
	api.POST("/uploads/:id/transcribe", transcribeUpload)

	api.GET("/transcriptions/:id", getTranscription)
	api.POST("/transcriptions/:id/extract", extractTranscription)

	api.GET("/extractions/:id", getExtraction)
	api.POST("/extractions/:id/preview", generatePreview)

	api.GET("/previews/pending", getPendingPreviews)
	api.GET("/previews/:id", getPreview)
	api.PATCH("/previews/:id", updatePreview)
	api.POST("/previews/:id/cancel", cancelPreview)
	api.POST("/previews/:id/confirm", confirmPreview)
	api.GET("/previews/:id/task", getPreviewTask)

	api.GET("/tasks", listTasks)

	api.POST("/voice/tasks", voiceTask)
}
