package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewUpdateAbsentVsNull(t *testing.T) {
	var absent PreviewUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Courses"}`), &absent))
	assert.NotNil(t, absent.Title)
	assert.False(t, absent.HasDueDate, "absent due_date must not be marked present")
	assert.False(t, absent.HasDescription)

	var null PreviewUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":null,"description":null}`), &null))
	assert.True(t, null.HasDueDate, "explicit null must be marked present")
	assert.Nil(t, null.DueDate)
	assert.True(t, null.HasDescription)
	assert.Nil(t, null.Description)
}

func TestPreviewUpdateWithValues(t *testing.T) {
	var u PreviewUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2026-09-02T00:00:00Z","priority":"high","recurring":true}`), &u))

	require.True(t, u.HasDueDate)
	require.NotNil(t, u.DueDate)
	assert.Equal(t, 2026, u.DueDate.Year())
	require.NotNil(t, u.Priority)
	assert.Equal(t, PriorityHigh, *u.Priority)
	require.NotNil(t, u.Recurring)
	assert.True(t, *u.Recurring)
}

func TestPreviewUpdateIsZero(t *testing.T) {
	var u PreviewUpdate
	require.NoError(t, json.Unmarshal([]byte(`{}`), &u))
	assert.True(t, u.IsZero())
}

func TestTaskFilterMatches(t *testing.T) {
	task := ConfirmedTask{HouseholdID: "h1", ChildID: "c1", AssigneeID: "p1"}

	assert.True(t, TaskFilter{}.Matches(task))
	assert.True(t, TaskFilter{HouseholdID: "h1"}.Matches(task))
	assert.True(t, TaskFilter{HouseholdID: "h1", ChildID: "c1", AssigneeID: "p1"}.Matches(task))
	assert.False(t, TaskFilter{HouseholdID: "h2"}.Matches(task))
	assert.False(t, TaskFilter{ChildID: "c2"}.Matches(task))
	assert.False(t, TaskFilter{AssigneeID: "p2"}.Matches(task))
}

func TestIsPreviewTerminal(t *testing.T) {
	tests := []struct {
		status   PreviewStatus
		terminal bool
	}{
		{PreviewStatusPending, false},
		{PreviewStatusConfirmed, true},
		{PreviewStatusCancelled, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.terminal, IsPreviewTerminal(tt.status), string(tt.status))
	}
}
