package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famtask/internal/extract"
	"famtask/internal/model"
	"famtask/internal/stt"
)

var pipeNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func testPipeline(provider stt.Provider) *Pipeline {
	p := New(provider, &extract.RuleExtractor{Now: func() time.Time { return pipeNow }})
	p.Now = func() time.Time { return pipeNow }
	return p
}

func household() model.HouseholdContext {
	return model.HouseholdContext{
		HouseholdID: "h1",
		Children: []model.Child{
			{ID: "child_lucas", Name: "Lucas", Nicknames: []string{"Lulu"}},
		},
		Parents: []model.Parent{
			{ID: "parent_marie", Name: "Marie", Role: "parent"},
			{ID: "parent_paul", Name: "Paul", Role: "parent"},
		},
	}
}

func workload() model.WorkloadSnapshot {
	return model.WorkloadSnapshot{
		Members: []model.MemberLoad{
			{MemberID: "parent_marie", Name: "Marie", Points: 6},
			{MemberID: "parent_paul", Name: "Paul", Points: 4},
		},
	}
}

func TestRunFullPipeline(t *testing.T) {
	provider := &stt.MockProvider{
		Text:       "Lucas doit aller chez le médecin demain",
		Language:   "fr",
		Confidence: 0.92,
		Duration:   3.1,
	}
	p := testPipeline(provider)

	preview, err := p.Run(context.Background(), RunInput{
		Filename:  "note.m4a",
		Audio:     []byte("fake audio bytes"),
		Language:  "auto",
		Household: household(),
		Workload:  workload(),
	})
	require.NoError(t, err)

	assert.Equal(t, model.PreviewStatusPending, preview.Status)
	assert.Equal(t, model.CategoryMedical, preview.Category)
	assert.Equal(t, "child_lucas", preview.ChildID)
	assert.Empty(t, preview.AssigneeID, "resolved child leaves assignment to the confirming user")
	require.NotNil(t, preview.DueDate)
	assert.Equal(t, 2, preview.DueDate.Day())

	// Every stage left its record behind
	stored, ok := p.Previews.Get(preview.ID)
	require.True(t, ok)
	assert.Equal(t, preview.ID, stored.ID)

	ex, ok := p.Extractions.Get(preview.ExtractionID)
	require.True(t, ok)

	tr, ok := p.Transcriptions.Get(ex.TranscriptionID)
	require.True(t, ok)
	assert.Equal(t, "fr", tr.Language)
}

func TestRunSuggestsAssigneeWithoutChild(t *testing.T) {
	provider := &stt.MockProvider{
		Text:       "faire les courses demain",
		Language:   "fr",
		Confidence: 0.9,
	}
	p := testPipeline(provider)

	preview, err := p.Run(context.Background(), RunInput{
		Filename:  "note.m4a",
		Audio:     []byte("fake audio bytes"),
		Language:  "fr",
		Household: household(),
		Workload:  workload(),
	})
	require.NoError(t, err)

	assert.Empty(t, preview.ChildID)
	assert.Equal(t, "parent_paul", preview.AssigneeID, "least-loaded parent suggested")
}

func TestFailedSTTLeavesNoResult(t *testing.T) {
	provider := &stt.MockProvider{Err: errors.New("provider down")}
	p := testPipeline(provider)

	_, err := p.Run(context.Background(), RunInput{
		AudioID:   "a1",
		Filename:  "note.m4a",
		Audio:     []byte("fake audio"),
		Household: household(),
	})
	require.Error(t, err)

	_, ok := p.Transcriptions.GetByAudio("a1")
	assert.False(t, ok, "no partial transcription after a failed provider call")
	assert.Empty(t, p.Previews.Pending())
}

func TestStagesAreIndependentlyRetryable(t *testing.T) {
	provider := &stt.MockProvider{Err: errors.New("flaky")}
	p := testPipeline(provider)

	// Upload once
	p.Uploads.InitializeUpload("up1", "u1", "note.m4a", 9)
	require.NoError(t, p.Uploads.AddChunk("up1", model.AudioChunk{Index: 0, TotalChunks: 1, Data: []byte("fakebytes")}))

	_, err := p.TranscribeUpload(context.Background(), "up1", "fr")
	require.Error(t, err)

	// Retrying transcription does not require re-uploading the audio
	provider.Err = nil
	provider.Text = "Lulu a piscine ce soir"

	tr, err := p.TranscribeUpload(context.Background(), "up1", "fr")
	require.NoError(t, err)

	ex, err := p.Extract(context.Background(), tr.ID, household())
	require.NoError(t, err)
	require.NotNil(t, ex.Child)
	assert.Equal(t, "child_lucas", ex.Child.ID)
	assert.Equal(t, model.MatchNickname, ex.Child.Kind)

	preview, err := p.GeneratePreview(ex.ID, household(), workload())
	require.NoError(t, err)
	assert.Equal(t, model.CategoryActivity, preview.Category)
}

func TestTranscribeUploadIncomplete(t *testing.T) {
	p := testPipeline(&stt.MockProvider{Text: "x"})
	p.Uploads.InitializeUpload("up1", "u1", "note.m4a", 10)
	require.NoError(t, p.Uploads.AddChunk("up1", model.AudioChunk{Index: 0, TotalChunks: 2, Data: []byte("half")}))

	_, err := p.TranscribeUpload(context.Background(), "up1", "fr")
	assert.Error(t, err)

	_, err = p.TranscribeUpload(context.Background(), "missing", "fr")
	assert.Error(t, err)
}

func TestExtractUnknownTranscription(t *testing.T) {
	p := testPipeline(&stt.MockProvider{Text: "x"})
	_, err := p.Extract(context.Background(), "missing", household())
	assert.Error(t, err)
}

func TestGeneratePreviewUnknownExtraction(t *testing.T) {
	p := testPipeline(&stt.MockProvider{Text: "x"})
	_, err := p.GeneratePreview("missing", household(), workload())
	assert.Error(t, err)
}
