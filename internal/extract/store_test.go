package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famtask/internal/model"
)

func TestStoreStartReservesWithoutResult(t *testing.T) {
	store := NewStore()
	store.Start("e1", "t1")

	_, ok := store.Get("e1")
	assert.False(t, ok, "a reserved extraction must not be readable until completed")
}

func TestStoreCompleteThenGet(t *testing.T) {
	store := NewStore()
	store.Start("e1", "t1")

	store.Complete(model.SemanticExtraction{
		ID:              "e1",
		TranscriptionID: "t1",
		Text:            "Lucas chez le médecin demain",
		Category:        model.CategoryMedical,
	})

	got, ok := store.Get("e1")
	require.True(t, ok)
	assert.Equal(t, model.CategoryMedical, got.Category)
	assert.False(t, got.CreatedAt.IsZero())

	byTr, ok := store.GetByTranscription("t1")
	require.True(t, ok)
	assert.Equal(t, "e1", byTr.ID)
}

func TestStoreDiscardDropsReservation(t *testing.T) {
	store := NewStore()
	store.Start("e1", "t1")
	require.Len(t, store.reserved, 1)

	store.Discard("e1")
	assert.Empty(t, store.reserved, "a failed extraction must not leave its reservation behind")

	store.Discard("unknown")
}

func TestStoreCompleteConsumesReservation(t *testing.T) {
	store := NewStore()
	store.Start("e1", "t1")
	store.Complete(model.SemanticExtraction{ID: "e1", TranscriptionID: "t1", Text: "x"})

	assert.Empty(t, store.reserved)
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore()
	_, ok := store.Get("missing")
	assert.False(t, ok)
	_, ok = store.GetByTranscription("missing")
	assert.False(t, ok)
}
