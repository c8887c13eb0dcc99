package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"famtask/internal/model"
)

// Extractor turns transcribed text into a structured interpretation
// against a household context
type Extractor interface {
	Extract(ctx context.Context, transcriptionID, text, language string, household model.HouseholdContext) (*model.SemanticExtraction, error)
}

// lowConfidenceFloor is the overall-confidence threshold below which an
// extraction carries a warning
const lowConfidenceFloor = 0.5

// Aggregation weights. The subject of the task matters most: an
// utterance whose child could not be resolved scores low even when
// category classification alone is confident.
const (
	weightChild    = 0.4
	weightDate     = 0.3
	weightCategory = 0.3
)

// AggregateConfidence combines field-level confidences into the overall
// score. Unresolved fields already carry their penalty value, so nothing
// is omitted from the average.
func AggregateConfidence(childConf, dateConf, categoryConf float64) float64 {
	return weightChild*childConf + weightDate*dateConf + weightCategory*categoryConf
}

// RuleExtractor is the deterministic interpretation engine. It backs the
// LLM extractor as fallback and validator, and runs alone in offline and
// test setups. Now is injectable so date resolution is reproducible.
type RuleExtractor struct {
	Now func() time.Time
}

// NewRuleExtractor creates a rule extractor using the wall clock
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{Now: time.Now}
}

// Name returns the extractor name
func (e *RuleExtractor) Name() string {
	return "rules"
}

// Extract derives action, child, date, category and urgency from the text
func (e *RuleExtractor) Extract(ctx context.Context, transcriptionID, text, language string, household model.HouseholdContext) (*model.SemanticExtraction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty transcript")
	}

	now := e.Now()
	warnings := []string{}

	child, childWarnings := ResolveChild(text, household.Children)
	warnings = append(warnings, childWarnings...)

	date := ResolveDate(text, now)
	if date.Type == model.DateNone {
		warnings = append(warnings, "no date mentioned, task will have no due date")
	}

	category, categoryConf := ClassifyCategory(text)
	urgency := ClassifyUrgency(text, date, now)

	childConf := childConfidenceNone
	if child != nil {
		childConf = child.Confidence
	}

	overall := AggregateConfidence(childConf, date.Confidence, categoryConf)
	if overall < lowConfidenceFloor {
		warnings = append(warnings, fmt.Sprintf("low overall confidence (%.2f)", overall))
	}

	return &model.SemanticExtraction{
		TranscriptionID:    transcriptionID,
		Text:               text,
		Language:           language,
		Action:             detectAction(text),
		Child:              child,
		Date:               date,
		Category:           category,
		CategoryConfidence: categoryConf,
		Urgency:            urgency,
		OverallConfidence:  overall,
		Warnings:           warnings,
		CreatedAt:          now,
	}, nil
}

// detectAction keeps the action free-form; today everything spoken is a
// task, reminders just get a different tag
func detectAction(text string) string {
	folded := fold(text)
	if strings.Contains(folded, "rappelle") || strings.Contains(folded, "n'oublie pas") || strings.Contains(folded, "rappeler") {
		return "create_reminder"
	}
	return "create_task"
}
