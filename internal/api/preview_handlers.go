package api

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"famtask/internal/model"
	"famtask/internal/utils"
)

// getPendingPreviews handles GET /api/previews/pending
func getPendingPreviews(c *gin.Context) {
	previews := pipe.Previews.Pending()
	utils.Success(c, gin.H{
		"previews": previews,
		"count":    len(previews),
	})
}

// getPreview handles GET /api/previews/:id
func getPreview(c *gin.Context) {
	preview, ok := pipe.Previews.Get(c.Param("id"))
	if !ok {
		utils.Error(c, http.StatusNotFound, "preview not found")
		return
	}

	utils.Success(c, gin.H{"preview": preview})
}

// updatePreview handles PATCH /api/previews/:id
func updatePreview(c *gin.Context) {
	id := c.Param("id")

	var update model.PreviewUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid update body")
		return
	}
	if update.IsZero() {
		utils.Error(c, http.StatusBadRequest, "update carries no fields")
		return
	}

	if !pipe.Previews.Update(id, update) {
		utils.Error(c, http.StatusConflict, "preview not found or already resolved")
		return
	}

	preview, _ := pipe.Previews.Get(id)
	utils.Success(c, gin.H{"preview": preview})
}

// cancelPreview handles POST /api/previews/:id/cancel
func cancelPreview(c *gin.Context) {
	id := c.Param("id")

	if !pipe.Previews.Cancel(id) {
		utils.Error(c, http.StatusConflict, "preview not found or already resolved")
		return
	}

	log.Printf("[Preview] Cancelled: %s", id)
	utils.Success(c, gin.H{
		"preview_id": id,
		"status":     model.PreviewStatusCancelled,
	})
}

// ConfirmRequest is the body of POST /api/previews/:id/confirm
type ConfirmRequest struct {
	HouseholdID string               `json:"household_id" binding:"required"`
	UserID      string               `json:"user_id" binding:"required"`
	Overrides   *model.TaskOverrides `json:"overrides"`
}

// confirmPreview handles POST /api/previews/:id/confirm
func confirmPreview(c *gin.Context) {
	id := c.Param("id")

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "household_id and user_id are required")
		return
	}

	task := pipe.Previews.Confirm(id, req.HouseholdID, req.UserID, req.Overrides)
	if task == nil {
		// Already resolved or unknown; confirming twice never makes two tasks
		utils.Error(c, http.StatusConflict, "preview not found or already resolved")
		return
	}

	log.Printf("[Preview] Confirmed %s as task %s (household %s)", id, task.ID, req.HouseholdID)

	persistTask(c.Request.Context(), task)

	utils.Success(c, gin.H{"task": task})
}

// persistTask hands the confirmed task to the durable store when one is
// configured. Persistence failure does not fail the confirmation; the
// in-memory index stays authoritative for this process.
func persistTask(ctx context.Context, task *model.ConfirmedTask) {
	if taskRepo == nil {
		return
	}
	if err := taskRepo.Create(ctx, task); err != nil {
		log.Printf("Warning: Failed to persist confirmed task %s: %v", task.ID, err)
	}
}

// getPreviewTask handles GET /api/previews/:id/task
func getPreviewTask(c *gin.Context) {
	id := c.Param("id")

	// The durable store is authoritative across restarts when configured
	if taskRepo != nil {
		task, err := taskRepo.GetByPreview(c.Request.Context(), id)
		if err == nil {
			utils.Success(c, gin.H{"task": task})
			return
		}
	}

	task, ok := pipe.Previews.TaskByPreview(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "no confirmed task for this preview")
		return
	}

	utils.Success(c, gin.H{"task": task})
}

// listTasks handles GET /api/tasks
func listTasks(c *gin.Context) {
	filter := model.TaskFilter{
		HouseholdID: c.Query("household_id"),
		ChildID:     c.Query("child_id"),
		AssigneeID:  c.Query("assignee_id"),
	}
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)

	if taskRepo != nil {
		tasks, err := taskRepo.List(c.Request.Context(), filter, limit, offset)
		if err == nil {
			utils.Success(c, gin.H{
				"tasks": tasks,
				"count": len(tasks),
			})
			return
		}
		log.Printf("Warning: Failed to list tasks from database, serving in-memory: %v", err)
	}

	tasks := pipe.Previews.ConfirmedTasks(filter)
	utils.Success(c, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
