package model

import (
	"encoding/json"
	"time"
)

// PreviewUpdate carries partial edits to a pending preview. Absent fields
// leave the preview untouched; for the nullable fields (description, due
// date) an explicit JSON null clears the value, which is tracked with a
// presence flag since a nil pointer alone cannot tell the two apart.
type PreviewUpdate struct {
	Title    *string
	Priority *Priority

	Description    *string
	HasDescription bool

	DueDate    *time.Time
	HasDueDate bool

	Recurring *bool
}

type previewUpdateWire struct {
	Title       *string    `json:"title"`
	Priority    *Priority  `json:"priority"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Recurring   *bool      `json:"recurring"`
}

// UnmarshalJSON decodes the update while preserving the absent-vs-null
// distinction for nullable fields
func (u *PreviewUpdate) UnmarshalJSON(data []byte) error {
	var wire previewUpdateWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	u.Title = wire.Title
	u.Priority = wire.Priority
	u.Recurring = wire.Recurring

	if _, ok := keys["description"]; ok {
		u.HasDescription = true
		u.Description = wire.Description
	}
	if _, ok := keys["due_date"]; ok {
		u.HasDueDate = true
		u.DueDate = wire.DueDate
	}

	return nil
}

// IsZero reports whether the update carries no fields at all
func (u PreviewUpdate) IsZero() bool {
	return u.Title == nil && u.Priority == nil && u.Recurring == nil &&
		!u.HasDescription && !u.HasDueDate
}
