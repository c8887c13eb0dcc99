package taskgen

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"famtask/internal/model"
)

// PreviewStore holds generated previews and the confirmed tasks they
// produce. A preview moves pending -> confirmed or pending -> cancelled,
// exactly once; everything after a terminal state is a no-op. Confirm runs
// entirely under the lock, which is what makes it exactly-once for
// concurrent callers.
type PreviewStore struct {
	mu        sync.Mutex
	previews  map[string]*model.TaskPreview
	confirmed map[string]*model.ConfirmedTask
	byPreview map[string]string // preview id -> confirmed task id
}

// NewPreviewStore creates an empty preview store
func NewPreviewStore() *PreviewStore {
	return &PreviewStore{
		previews:  make(map[string]*model.TaskPreview),
		confirmed: make(map[string]*model.ConfirmedTask),
		byPreview: make(map[string]string),
	}
}

// Add installs a generated preview
func (s *PreviewStore) Add(preview model.TaskPreview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previews[preview.ID] = &preview
}

// Get returns the preview, or false if unknown
func (s *PreviewStore) Get(id string) (model.TaskPreview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.previews[id]
	if !ok {
		return model.TaskPreview{}, false
	}
	return *p, true
}

// Pending returns all previews still awaiting resolution
func (s *PreviewStore) Pending() []model.TaskPreview {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.TaskPreview
	for _, p := range s.previews {
		if p.Status == model.PreviewStatusPending {
			out = append(out, *p)
		}
	}
	return out
}

// Update merges the provided fields into a pending preview. Updating an
// unknown or resolved preview is a no-op and returns false. For the
// nullable fields an explicit null clears the value while an absent field
// leaves it untouched.
func (s *PreviewStore) Update(id string, update model.PreviewUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.previews[id]
	if !ok || model.IsPreviewTerminal(p.Status) {
		return false
	}

	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Priority != nil {
		p.Priority = *update.Priority
		// Priority moves the weight with it, same as at generation
		p.ChargeWeight = ChargeWeight(p.Category, p.Priority)
	}
	if update.HasDescription {
		if update.Description == nil {
			p.Description = ""
		} else {
			p.Description = *update.Description
		}
	}
	if update.HasDueDate {
		if update.DueDate == nil {
			p.DueDate = nil
		} else {
			due := *update.DueDate
			p.DueDate = &due
		}
	}
	if update.Recurring != nil {
		p.Recurring = *update.Recurring
	}

	return true
}

// Cancel transitions a pending preview to cancelled. No-op (false) when
// the preview is unknown or already resolved.
func (s *PreviewStore) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.previews[id]
	if !ok || model.IsPreviewTerminal(p.Status) {
		return false
	}
	p.Status = model.PreviewStatusCancelled
	return true
}

// Confirm transitions a pending preview to confirmed and materializes the
// durable task, applying caller overrides on top of the computed fields.
// Returns nil when the preview is unknown or already resolved: calling
// confirm twice on the same id never produces two tasks.
func (s *PreviewStore) Confirm(previewID, householdID, userID string, overrides *model.TaskOverrides) *model.ConfirmedTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.previews[previewID]
	if !ok || model.IsPreviewTerminal(p.Status) {
		return nil
	}

	task := &model.ConfirmedTask{
		ID:           uuid.New().String(),
		PreviewID:    p.ID,
		HouseholdID:  householdID,
		UserID:       userID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Priority:     p.Priority,
		Recurring:    p.Recurring,
		ChildID:      p.ChildID,
		ChildName:    p.ChildName,
		AssigneeID:   p.AssigneeID,
		AssigneeName: p.AssigneeName,
		ChargeWeight: p.ChargeWeight,
		Source:       model.TaskSourceVoice,
		CreatedAt:    time.Now(),
	}
	if p.DueDate != nil {
		due := *p.DueDate
		task.DueDate = &due
	}

	applyOverrides(task, overrides)
	task.ChargeWeight = ChargeWeight(task.Category, task.Priority)

	p.Status = model.PreviewStatusConfirmed
	s.confirmed[task.ID] = task
	s.byPreview[p.ID] = task.ID

	result := *task
	return &result
}

// TaskByPreview returns the task a preview was confirmed into, or false
// when the preview never was
func (s *PreviewStore) TaskByPreview(previewID string) (model.ConfirmedTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	taskID, ok := s.byPreview[previewID]
	if !ok {
		return model.ConfirmedTask{}, false
	}
	t, ok := s.confirmed[taskID]
	if !ok {
		return model.ConfirmedTask{}, false
	}
	return *t, true
}

// ConfirmedTasks lists confirmed tasks matching the filter
func (s *PreviewStore) ConfirmedTasks(filter model.TaskFilter) []model.ConfirmedTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.ConfirmedTask
	for _, t := range s.confirmed {
		if filter.Matches(*t) {
			out = append(out, *t)
		}
	}
	return out
}

func applyOverrides(task *model.ConfirmedTask, o *model.TaskOverrides) {
	if o == nil {
		return
	}
	if o.Title != nil {
		task.Title = *o.Title
	}
	if o.Description != nil {
		task.Description = *o.Description
	}
	if o.Priority != nil {
		task.Priority = *o.Priority
	}
	if o.DueDate != nil {
		due := *o.DueDate
		task.DueDate = &due
	}
	if o.ChildID != nil {
		if *o.ChildID != task.ChildID {
			task.ChildName = ""
		}
		task.ChildID = *o.ChildID
	}
	if o.AssigneeID != nil {
		if *o.AssigneeID != task.AssigneeID {
			task.AssigneeName = ""
		}
		task.AssigneeID = *o.AssigneeID
	}
}
