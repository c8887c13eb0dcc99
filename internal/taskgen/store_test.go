package taskgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famtask/internal/model"
)

func pendingPreview(id string) model.TaskPreview {
	due := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	return model.TaskPreview{
		ID:           id,
		Title:        "Médecin pour Lucas",
		Description:  "Lucas doit aller chez le médecin demain",
		Category:     model.CategoryMedical,
		Priority:     model.PriorityHigh,
		DueDate:      &due,
		ChildID:      "child_lucas",
		ChildName:    "Lucas",
		AssigneeID:   "parent_paul",
		AssigneeName: "Paul",
		ChargeWeight: 4.5,
		Confidence:   0.79,
		GeneratedAt:  time.Now(),
		Status:       model.PreviewStatusPending,
	}
}

func TestConfirmIsIdempotent(t *testing.T) {
	store := NewPreviewStore()
	store.Add(pendingPreview("p1"))

	first := store.Confirm("p1", "h1", "u1", nil)
	require.NotNil(t, first, "first confirm materializes the task")
	assert.Equal(t, "p1", first.PreviewID)
	assert.Equal(t, model.TaskSourceVoice, first.Source)

	second := store.Confirm("p1", "h1", "u1", nil)
	assert.Nil(t, second, "second confirm must be a no-op")

	tasks := store.ConfirmedTasks(model.TaskFilter{HouseholdID: "h1"})
	assert.Len(t, tasks, 1, "the confirmed index never holds duplicates for one preview")
}

func TestConfirmUnknownPreview(t *testing.T) {
	store := NewPreviewStore()
	assert.Nil(t, store.Confirm("missing", "h1", "u1", nil))
}

func TestConfirmAppliesOverrides(t *testing.T) {
	store := NewPreviewStore()
	store.Add(pendingPreview("p1"))

	title := "RDV pédiatre"
	prio := model.PriorityCritical
	assignee := "parent_marie"
	task := store.Confirm("p1", "h1", "u1", &model.TaskOverrides{
		Title:      &title,
		Priority:   &prio,
		AssigneeID: &assignee,
	})
	require.NotNil(t, task)

	assert.Equal(t, "RDV pédiatre", task.Title)
	assert.Equal(t, model.PriorityCritical, task.Priority)
	assert.Equal(t, "parent_marie", task.AssigneeID)
	assert.Empty(t, task.AssigneeName, "name from the preview no longer applies")
	// Weight follows the overridden priority, same formula as generation
	assert.Equal(t, ChargeWeight(model.CategoryMedical, model.PriorityCritical), task.ChargeWeight)
}

func TestCancelThenConfirmYieldsNoTask(t *testing.T) {
	store := NewPreviewStore()
	store.Add(pendingPreview("p1"))

	require.True(t, store.Cancel("p1"))
	assert.False(t, store.Cancel("p1"), "cancel is a no-op once resolved")
	assert.Nil(t, store.Confirm("p1", "h1", "u1", nil))

	p, ok := store.Get("p1")
	require.True(t, ok)
	assert.Equal(t, model.PreviewStatusCancelled, p.Status)
}

func TestUpdateOnlyWhilePending(t *testing.T) {
	store := NewPreviewStore()
	store.Add(pendingPreview("p1"))

	title := "Autre titre"
	require.True(t, store.Update("p1", model.PreviewUpdate{Title: &title}))

	store.Confirm("p1", "h1", "u1", nil)

	before, _ := store.Get("p1")
	assert.False(t, store.Update("p1", model.PreviewUpdate{Title: &title}), "update after confirm is a no-op")
	after, _ := store.Get("p1")
	assert.Equal(t, before, after, "store unchanged by rejected update")
}

func TestUpdateNullClearsDueDateAbsentKeeps(t *testing.T) {
	store := NewPreviewStore()
	store.Add(pendingPreview("p1"))

	// Absent due date: untouched
	title := "Titre"
	require.True(t, store.Update("p1", model.PreviewUpdate{Title: &title}))
	p, _ := store.Get("p1")
	assert.NotNil(t, p.DueDate)

	// Explicit null: cleared
	require.True(t, store.Update("p1", model.PreviewUpdate{HasDueDate: true, DueDate: nil}))
	p, _ = store.Get("p1")
	assert.Nil(t, p.DueDate, "explicit null is the only way to unset a date")

	// Explicit value: set
	due := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	require.True(t, store.Update("p1", model.PreviewUpdate{HasDueDate: true, DueDate: &due}))
	p, _ = store.Get("p1")
	require.NotNil(t, p.DueDate)
	assert.Equal(t, 5, p.DueDate.Day())
}

func TestUpdatePriorityMovesWeight(t *testing.T) {
	store := NewPreviewStore()
	store.Add(pendingPreview("p1"))

	prio := model.PriorityMedium
	require.True(t, store.Update("p1", model.PreviewUpdate{Priority: &prio}))

	p, _ := store.Get("p1")
	assert.Equal(t, ChargeWeight(model.CategoryMedical, model.PriorityMedium), p.ChargeWeight)
}

func TestPendingListsOnlyPending(t *testing.T) {
	store := NewPreviewStore()
	store.Add(pendingPreview("p1"))
	store.Add(pendingPreview("p2"))
	store.Add(pendingPreview("p3"))

	store.Confirm("p2", "h1", "u1", nil)
	store.Cancel("p3")

	pending := store.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "p1", pending[0].ID)
}

func TestTaskByPreview(t *testing.T) {
	store := NewPreviewStore()
	store.Add(pendingPreview("p1"))

	_, ok := store.TaskByPreview("p1")
	assert.False(t, ok, "no task before confirmation")

	task := store.Confirm("p1", "h1", "u1", nil)
	require.NotNil(t, task)

	got, ok := store.TaskByPreview("p1")
	require.True(t, ok)
	assert.Equal(t, task.ID, got.ID)

	_, ok = store.TaskByPreview("missing")
	assert.False(t, ok)
}

func TestConfirmedTasksFilter(t *testing.T) {
	store := NewPreviewStore()
	store.Add(pendingPreview("p1"))

	p2 := pendingPreview("p2")
	p2.ChildID = "child_emma"
	p2.ChildName = "Emma"
	store.Add(p2)

	store.Confirm("p1", "h1", "u1", nil)
	store.Confirm("p2", "h2", "u1", nil)

	assert.Len(t, store.ConfirmedTasks(model.TaskFilter{}), 2)
	assert.Len(t, store.ConfirmedTasks(model.TaskFilter{HouseholdID: "h1"}), 1)
	assert.Len(t, store.ConfirmedTasks(model.TaskFilter{ChildID: "child_emma"}), 1)
	assert.Len(t, store.ConfirmedTasks(model.TaskFilter{HouseholdID: "h2", ChildID: "child_lucas"}), 0)
}
