package repository

import (
	"context"

	"famtask/internal/model"
)

// TaskRepository is the durable task store boundary. Confirmed tasks are
// handed across it; the external task manager owns them afterwards.
type TaskRepository interface {
	// Create persists a confirmed task
	Create(ctx context.Context, task *model.ConfirmedTask) error

	// List retrieves confirmed tasks matching the filter, newest first
	List(ctx context.Context, filter model.TaskFilter, limit, offset int) ([]model.ConfirmedTask, error)

	// GetByPreview retrieves the task confirmed from a preview, if any
	GetByPreview(ctx context.Context, previewID string) (*model.ConfirmedTask, error)
}
