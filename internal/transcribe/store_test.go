package transcribe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famtask/internal/model"
)

func TestStartDoesNotProduceReadableResult(t *testing.T) {
	store := NewStore()
	store.Start(model.TranscriptionRequest{ID: "t1", AudioID: "a1", Language: "fr"})

	_, ok := store.Get("t1")
	assert.False(t, ok, "a started transcription must not be readable until completed")

	_, ok = store.GetByAudio("a1")
	assert.False(t, ok)
}

func TestCompleteInstallsResultAtomically(t *testing.T) {
	store := NewStore()
	store.Start(model.TranscriptionRequest{ID: "t1", AudioID: "a1", Language: "auto"})

	store.Complete(model.TranscriptionResult{
		ID:         "t1",
		AudioID:    "a1",
		Text:       "Lucas doit aller chez le médecin demain",
		Language:   "fr", // the provider's word wins over the "auto" hint
		Confidence: 0.92,
		Duration:   3.4,
		Provider:   "mock",
	})

	got, ok := store.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "fr", got.Language)
	assert.Equal(t, 0.92, got.Confidence)
	assert.False(t, got.CreatedAt.IsZero())

	byAudio, ok := store.GetByAudio("a1")
	require.True(t, ok)
	assert.Equal(t, got.ID, byAudio.ID)
}

func TestDiscardDropsPendingIntent(t *testing.T) {
	store := NewStore()
	store.Start(model.TranscriptionRequest{ID: "t1", AudioID: "a1"})
	require.Len(t, store.pending, 1)

	store.Discard("t1")
	assert.Empty(t, store.pending, "a failed transcription must not leave its intent behind")

	store.Discard("unknown")
}

func TestCompleteConsumesPendingIntent(t *testing.T) {
	store := NewStore()
	store.Start(model.TranscriptionRequest{ID: "t1", AudioID: "a1"})
	store.Complete(model.TranscriptionResult{ID: "t1", AudioID: "a1", Text: "x"})

	assert.Empty(t, store.pending)
}

func TestGetUnknownIsNotFound(t *testing.T) {
	store := NewStore()
	_, ok := store.Get("missing")
	assert.False(t, ok)
}
