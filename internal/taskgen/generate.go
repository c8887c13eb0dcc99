package taskgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"famtask/internal/model"
)

// Category base weights in charge points. Charge weight is the mental-load
// unit used for household balance, so it must come out identical whether a
// task was dictated or typed.
var categoryBaseWeight = map[model.Category]float64{
	model.CategoryMedical:  3,
	model.CategorySchool:   2,
	model.CategoryChores:   2,
	model.CategoryShopping: 1,
	model.CategoryActivity: 2,
	model.CategoryOther:    1,
}

var priorityMultiplier = map[model.Priority]float64{
	model.PriorityLow:      1.0,
	model.PriorityMedium:   1.0,
	model.PriorityHigh:     1.5,
	model.PriorityCritical: 2.0,
}

// PriorityForUrgency maps extracted urgency onto task priority,
// monotonically
func PriorityForUrgency(u model.Urgency) model.Priority {
	switch u {
	case model.UrgencyLow:
		return model.PriorityLow
	case model.UrgencyHigh:
		return model.PriorityHigh
	case model.UrgencyCritical:
		return model.PriorityCritical
	default:
		return model.PriorityMedium
	}
}

// ChargeWeight computes the workload points a task adds
func ChargeWeight(category model.Category, priority model.Priority) float64 {
	base, ok := categoryBaseWeight[category]
	if !ok {
		base = categoryBaseWeight[model.CategoryOther]
	}
	mult, ok := priorityMultiplier[priority]
	if !ok {
		mult = 1.0
	}
	return base * mult
}

// SuggestAssignee picks the least-loaded parent from the workload
// snapshot, ties broken by snapshot order (the household ordering). It is
// a suggestion only, always overridable at confirmation. Returns false
// when no parent appears in the snapshot.
func SuggestAssignee(household model.HouseholdContext, workload model.WorkloadSnapshot) (model.MemberLoad, bool) {
	isParent := make(map[string]bool, len(household.Parents))
	for _, p := range household.Parents {
		isParent[p.ID] = true
	}

	var best model.MemberLoad
	found := false
	for _, m := range workload.Members {
		if !isParent[m.MemberID] {
			continue
		}
		if !found || m.Points < best.Points {
			best = m
			found = true
		}
	}
	return best, found
}

// GeneratePreview turns an extraction and a workload snapshot into a task
// preview. Pure computation, no I/O: confidence and warnings propagate
// from the extraction unchanged, the due date is only ever copied from a
// parsed date, never invented.
func GeneratePreview(extraction model.SemanticExtraction, household model.HouseholdContext, workload model.WorkloadSnapshot, now time.Time) model.TaskPreview {
	priority := PriorityForUrgency(extraction.Urgency)

	preview := model.TaskPreview{
		ID:           uuid.New().String(),
		ExtractionID: extraction.ID,
		Title:        buildTitle(extraction),
		Description:  strings.TrimSpace(extraction.Text),
		Category:     extraction.Category,
		Priority:     priority,
		ChargeWeight: ChargeWeight(extraction.Category, priority),
		Confidence:   extraction.OverallConfidence,
		Warnings:     append([]string(nil), extraction.Warnings...),
		GeneratedAt:  now,
		Status:       model.PreviewStatusPending,
	}

	if extraction.Date.Parsed != nil {
		due := *extraction.Date.Parsed
		preview.DueDate = &due
	}

	if extraction.Child != nil {
		preview.ChildID = extraction.Child.ID
		preview.ChildName = extraction.Child.Name
	}

	// Suggestion only fills the gap: once a child was resolved the
	// utterance already names who the task concerns, and assignment is
	// left to the confirming user.
	if extraction.Child == nil {
		if assignee, ok := SuggestAssignee(household, workload); ok {
			preview.AssigneeID = assignee.MemberID
			preview.AssigneeName = assignee.Name
		}
	}

	preview.AlternativeTitles = alternativeTitles(extraction)

	return preview
}

// buildTitle derives a short title from the utterance
func buildTitle(ex model.SemanticExtraction) string {
	words := strings.Fields(strings.TrimSpace(ex.Text))
	if len(words) > 8 {
		words = words[:8]
	}
	title := strings.Join(words, " ")
	title = strings.TrimRight(title, ".!?,;")
	if title == "" {
		title = "Nouvelle tâche"
	}
	return upperFirst(title)
}

// alternativeTitles offers one or two paraphrases so the confirming user
// can pick a clearer phrasing without re-recording
func alternativeTitles(ex model.SemanticExtraction) []string {
	var alts []string

	subject := ""
	if ex.Child != nil {
		subject = " pour " + ex.Child.Name
	}

	switch ex.Category {
	case model.CategoryMedical:
		alts = append(alts, "Rendez-vous médical"+subject)
	case model.CategorySchool:
		alts = append(alts, "À faire pour l'école"+subject)
	case model.CategoryShopping:
		alts = append(alts, "Courses à faire")
	case model.CategoryChores:
		alts = append(alts, "Tâche ménagère")
	case model.CategoryActivity:
		alts = append(alts, "Activité"+subject)
	}

	if ex.Action == "create_reminder" {
		alts = append(alts, "Rappel"+subject)
	} else if ex.Child != nil {
		alts = append(alts, fmt.Sprintf("Tâche pour %s", ex.Child.Name))
	}

	if len(alts) > 2 {
		alts = alts[:2]
	}
	return alts
}

func upperFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
