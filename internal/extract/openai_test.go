package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famtask/internal/model"
)

func lowConfidenceWarnings(ex *model.SemanticExtraction) []string {
	var out []string
	for _, w := range ex.Warnings {
		if strings.HasPrefix(w, "low overall confidence") {
			out = append(out, w)
		}
	}
	return out
}

func TestMergeClearsWarningWhenConfidenceRecovers(t *testing.T) {
	// No child and no date: the rule engine scores this below the floor
	ex, err := testExtractor().Extract(context.Background(), "t1",
		"aller chez le médecin", "fr", testHousehold())
	require.NoError(t, err)
	require.Len(t, lowConfidenceWarnings(ex), 1)

	mergeLLMAnswer(ex, llmExtraction{ChildID: "child_lucas"}, testHousehold())

	assert.GreaterOrEqual(t, ex.OverallConfidence, lowConfidenceFloor)
	assert.Empty(t, lowConfidenceWarnings(ex),
		"a merge that lifts the aggregate above the floor clears the warning")
	require.NotNil(t, ex.Child)
	assert.Equal(t, "child_lucas", ex.Child.ID)
}

func TestMergeRewritesStaleWarningNumber(t *testing.T) {
	ex, err := testExtractor().Extract(context.Background(), "t1",
		"penser à ce truc", "fr", testHousehold())
	require.NoError(t, err)
	require.Len(t, lowConfidenceWarnings(ex), 1)

	mergeLLMAnswer(ex, llmExtraction{Category: "chores"}, testHousehold())

	assert.Equal(t, model.CategoryChores, ex.Category)
	warnings := lowConfidenceWarnings(ex)
	require.Len(t, warnings, 1, "still below the floor, exactly one warning")
	assert.Contains(t, warnings[0], "0.32", "the number tracks the merged aggregate")
}

func TestMergeIgnoresUnknownChild(t *testing.T) {
	ex, err := testExtractor().Extract(context.Background(), "t1",
		"aller chez le médecin demain", "fr", testHousehold())
	require.NoError(t, err)

	mergeLLMAnswer(ex, llmExtraction{ChildID: "child_unknown"}, testHousehold())
	assert.Nil(t, ex.Child, "a child id outside the household roster is discarded")
}
