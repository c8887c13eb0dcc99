package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"famtask/internal/model"
)

// LLMExtractor interprets transcripts with an OpenAI chat completion,
// using the rule engine to resolve what the model reports and to fill
// what it misses. A failed API call propagates as an error and leaves no
// partial extraction behind.
type LLMExtractor struct {
	client *openai.Client
	rules  *RuleExtractor
}

// NewLLMExtractor creates an LLM extractor
func NewLLMExtractor(apiKey string) *LLMExtractor {
	return &LLMExtractor{
		client: openai.NewClient(apiKey),
		rules:  NewRuleExtractor(),
	}
}

// Name returns the extractor name
func (e *LLMExtractor) Name() string {
	return "openai"
}

// llmExtraction is the wire shape the model is asked to return
type llmExtraction struct {
	Action     string   `json:"action"`
	ChildID    string   `json:"child_id"`
	DatePhrase string   `json:"date_phrase"`
	DateType   string   `json:"date_type"`
	Category   string   `json:"category"`
	Urgency    string   `json:"urgency"`
	Confidence float64  `json:"confidence"`
	Warnings   []string `json:"warnings"`
}

// Extract calls the LLM and merges its answer with the deterministic rule
// extraction
func (e *LLMExtractor) Extract(ctx context.Context, transcriptionID, text, language string, household model.HouseholdContext) (*model.SemanticExtraction, error) {
	systemPrompt, userPrompt := BuildExtractionPrompt(text, language, household)

	log.Printf("[Extract] LLM request: transcription=%s, text length=%d", transcriptionID, len(text))

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI returned no choices")
	}

	content := resp.Choices[0].Message.Content
	var wire llmExtraction
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		// Some models wrap JSON in markdown fences despite the response format
		salvaged := extractJSONFromMarkdown(content)
		if err := json.Unmarshal([]byte(salvaged), &wire); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
	}

	// The rule extraction is the deterministic backbone; the LLM answer
	// refines it where it is usable.
	extraction, err := e.rules.Extract(ctx, transcriptionID, text, language, household)
	if err != nil {
		return nil, err
	}

	mergeLLMAnswer(extraction, wire, household)

	log.Printf("[Extract] LLM merge done: child=%v category=%s urgency=%s confidence=%.2f",
		extraction.Child != nil, extraction.Category, extraction.Urgency, extraction.OverallConfidence)

	return extraction, nil
}

// mergeLLMAnswer overlays the validated parts of the LLM answer onto the
// rule extraction
func mergeLLMAnswer(ex *model.SemanticExtraction, wire llmExtraction, household model.HouseholdContext) {
	if wire.Action == "create_task" || wire.Action == "create_reminder" {
		ex.Action = wire.Action
	}

	// Only accept a child the household actually has, and only when the
	// rules found nothing themselves
	if ex.Child == nil && wire.ChildID != "" {
		if child, ok := household.ChildByID(wire.ChildID); ok {
			ex.Child = &model.ChildMatch{
				ID:         child.ID,
				Name:       child.Name,
				Kind:       model.MatchNickname,
				Confidence: childConfidenceNickname,
			}
			ex.OverallConfidence = AggregateConfidence(childConfidenceNickname, ex.Date.Confidence, ex.CategoryConfidence)
		}
	}

	switch model.Category(wire.Category) {
	case model.CategoryMedical, model.CategorySchool, model.CategoryChores,
		model.CategoryShopping, model.CategoryActivity:
		if ex.Category == model.CategoryOther {
			ex.Category = model.Category(wire.Category)
			ex.CategoryConfidence = 0.6
			ex.OverallConfidence = AggregateConfidence(childConfidence(ex.Child), ex.Date.Confidence, ex.CategoryConfidence)
		}
	}

	switch model.Urgency(wire.Urgency) {
	case model.UrgencyCritical, model.UrgencyHigh:
		// Escalation only: the rules never get overruled downwards
		if ex.Urgency == model.UrgencyNormal || ex.Urgency == model.UrgencyLow {
			ex.Urgency = model.Urgency(wire.Urgency)
		}
	}

	for _, w := range wire.Warnings {
		if w != "" {
			ex.Warnings = append(ex.Warnings, w)
		}
	}

	refreshLowConfidenceWarning(ex)
}

// refreshLowConfidenceWarning re-derives the low-confidence warning after
// the merge moved the aggregate, so the warning never carries a stale
// number or fires above the floor
func refreshLowConfidenceWarning(ex *model.SemanticExtraction) {
	kept := ex.Warnings[:0]
	for _, w := range ex.Warnings {
		if !strings.HasPrefix(w, "low overall confidence") {
			kept = append(kept, w)
		}
	}
	ex.Warnings = kept
	if ex.OverallConfidence < lowConfidenceFloor {
		ex.Warnings = append(ex.Warnings, fmt.Sprintf("low overall confidence (%.2f)", ex.OverallConfidence))
	}
}

func childConfidence(child *model.ChildMatch) float64 {
	if child == nil {
		return childConfidenceNone
	}
	return child.Confidence
}

// extractJSONFromMarkdown strips markdown code fences around a JSON body
func extractJSONFromMarkdown(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}

// CreateExtractor selects the extractor by configuration: the LLM one when
// an API key is available, the rule engine otherwise
func CreateExtractor(openAIKey string) Extractor {
	if openAIKey != "" {
		log.Printf("[Extract Factory] Creating OpenAI extractor")
		return NewLLMExtractor(openAIKey)
	}
	log.Printf("[Extract Factory] OPENAI_API_KEY not set, using rule-based extractor")
	return NewRuleExtractor()
}
