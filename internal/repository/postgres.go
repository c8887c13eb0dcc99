package repository

import (
	"context"
	"database/sql"
	"fmt"

	"famtask/internal/db"
	"famtask/internal/model"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL task repository
func NewPostgresRepository() TaskRepository {
	return &postgresRepository{
		db: db.DB,
	}
}

// Create persists a confirmed task. The unique index on preview_id is the
// database-side backstop for exactly-once confirmation across instances.
func (r *postgresRepository) Create(ctx context.Context, task *model.ConfirmedTask) error {
	query := `
		INSERT INTO confirmed_tasks (
			id, preview_id, household_id, user_id, title, description,
			category, priority, due_date, recurring, child_id, child_name,
			assignee_id, assignee_name, charge_weight, source, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		ON CONFLICT (preview_id) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.PreviewID,
		task.HouseholdID,
		task.UserID,
		task.Title,
		nullableString(task.Description),
		string(task.Category),
		string(task.Priority),
		task.DueDate,
		task.Recurring,
		nullableString(task.ChildID),
		nullableString(task.ChildName),
		nullableString(task.AssigneeID),
		nullableString(task.AssigneeName),
		task.ChargeWeight,
		task.Source,
		task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create confirmed task: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("preview %s already confirmed", task.PreviewID)
	}

	return nil
}

// List retrieves confirmed tasks matching the filter
func (r *postgresRepository) List(ctx context.Context, filter model.TaskFilter, limit, offset int) ([]model.ConfirmedTask, error) {
	query := `
		SELECT id, preview_id, household_id, user_id, title, description,
		       category, priority, due_date, recurring, child_id, child_name,
		       assignee_id, assignee_name, charge_weight, source, created_at
		FROM confirmed_tasks
		WHERE ($1 = '' OR household_id = $1)
		  AND ($2 = '' OR child_id = $2)
		  AND ($3 = '' OR assignee_id = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.QueryContext(ctx, query,
		filter.HouseholdID, filter.ChildID, filter.AssigneeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.ConfirmedTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// GetByPreview retrieves the task confirmed from a preview
func (r *postgresRepository) GetByPreview(ctx context.Context, previewID string) (*model.ConfirmedTask, error) {
	query := `
		SELECT id, preview_id, household_id, user_id, title, description,
		       category, priority, due_date, recurring, child_id, child_name,
		       assignee_id, assignee_name, charge_weight, source, created_at
		FROM confirmed_tasks
		WHERE preview_id = $1
	`

	row := r.db.QueryRowContext(ctx, query, previewID)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no confirmed task for preview %s", previewID)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (model.ConfirmedTask, error) {
	var (
		task                            model.ConfirmedTask
		description, childID, childName sql.NullString
		assigneeID, assigneeName        sql.NullString
		category, priority              string
		dueDate                         sql.NullTime
	)

	err := row.Scan(
		&task.ID, &task.PreviewID, &task.HouseholdID, &task.UserID,
		&task.Title, &description, &category, &priority, &dueDate,
		&task.Recurring, &childID, &childName, &assigneeID, &assigneeName,
		&task.ChargeWeight, &task.Source, &task.CreatedAt,
	)
	if err != nil {
		return model.ConfirmedTask{}, err
	}

	task.Description = description.String
	task.Category = model.Category(category)
	task.Priority = model.Priority(priority)
	task.ChildID = childID.String
	task.ChildName = childName.String
	task.AssigneeID = assigneeID.String
	task.AssigneeName = assigneeName.String
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}

	return task, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
