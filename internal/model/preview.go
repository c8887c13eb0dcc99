package model

import "time"

// PreviewStatus is the state of a generated task preview
type PreviewStatus string

const (
	PreviewStatusPending   PreviewStatus = "pending"
	PreviewStatusConfirmed PreviewStatus = "confirmed"
	PreviewStatusCancelled PreviewStatus = "cancelled"
)

// IsPreviewTerminal reports whether a preview can no longer change
func IsPreviewTerminal(s PreviewStatus) bool {
	return s == PreviewStatusConfirmed || s == PreviewStatusCancelled
}

// Priority is the discrete priority level of a task
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// TaskPreview is a generated, not-yet-durable task proposal awaiting
// confirmation
type TaskPreview struct {
	ID                string        `json:"id"`
	ExtractionID      string        `json:"extraction_id"`
	Title             string        `json:"title"`
	Description       string        `json:"description,omitempty"`
	Category          Category      `json:"category"`
	Priority          Priority      `json:"priority"`
	DueDate           *time.Time    `json:"due_date,omitempty"`
	Recurring         bool          `json:"recurring"`
	ChildID           string        `json:"child_id,omitempty"`
	ChildName         string        `json:"child_name,omitempty"`
	AssigneeID        string        `json:"assignee_id,omitempty"`
	AssigneeName      string        `json:"assignee_name,omitempty"`
	ChargeWeight      float64       `json:"charge_weight"`
	Confidence        float64       `json:"confidence"`
	Warnings          []string      `json:"warnings"`
	AlternativeTitles []string      `json:"alternative_titles"`
	GeneratedAt       time.Time     `json:"generated_at"`
	Status            PreviewStatus `json:"status"`
}

// TaskSource tags where a confirmed task came from
const TaskSourceVoice = "voice"

// ConfirmedTask is the durable artifact produced by confirming a preview.
// Immutable once created; the durable task store owns it afterwards.
type ConfirmedTask struct {
	ID           string     `json:"id"`
	PreviewID    string     `json:"preview_id"`
	HouseholdID  string     `json:"household_id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Category     Category   `json:"category"`
	Priority     Priority   `json:"priority"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Recurring    bool       `json:"recurring"`
	ChildID      string     `json:"child_id,omitempty"`
	ChildName    string     `json:"child_name,omitempty"`
	AssigneeID   string     `json:"assignee_id,omitempty"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	ChargeWeight float64    `json:"charge_weight"`
	Source       string     `json:"source"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TaskOverrides carries caller-supplied replacements applied on top of a
// preview's computed fields at confirmation. Nil fields keep the preview
// value.
type TaskOverrides struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ChildID     *string    `json:"child_id,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
}

// TaskFilter narrows a confirmed-task listing. Empty fields match anything.
type TaskFilter struct {
	HouseholdID string
	ChildID     string
	AssigneeID  string
}

// Matches reports whether a task passes the filter
func (f TaskFilter) Matches(t ConfirmedTask) bool {
	if f.HouseholdID != "" && t.HouseholdID != f.HouseholdID {
		return false
	}
	if f.ChildID != "" && t.ChildID != f.ChildID {
		return false
	}
	if f.AssigneeID != "" && t.AssigneeID != f.AssigneeID {
		return false
	}
	return true
}
