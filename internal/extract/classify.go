package extract

import (
	"strings"
	"time"

	"famtask/internal/model"
)

const categoryConfidenceNone = 0.2

// categoryKeywords holds folded keyword lists per bucket. Order matters:
// on a tie the earlier bucket wins.
var categoryKeywords = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryMedical, []string{
		"medecin", "docteur", "dentiste", "pediatre", "orthophoniste",
		"kine", "vaccin", "ordonnance", "pharmacie", "rendez-vous medical",
		"malade", "fievre", "medicament",
	}},
	{model.CategorySchool, []string{
		"ecole", "devoirs", "cartable", "maitresse", "maitre", "cantine",
		"classe", "reunion parents", "sortie scolaire", "inscription",
		"college", "creche", "garderie",
	}},
	{model.CategoryShopping, []string{
		"courses", "acheter", "supermarche", "magasin", "commander",
		"racheter", "liste de courses",
	}},
	{model.CategoryChores, []string{
		"ranger", "menage", "lessive", "vaisselle", "linge", "poubelles",
		"nettoyer", "laver", "repasser",
	}},
	{model.CategoryActivity, []string{
		"foot", "football", "piscine", "danse", "judo", "musique",
		"anniversaire", "gouter", "entrainement", "match", "sport",
		"bibliotheque", "parc",
	}},
}

// urgencyKeywords escalate classification when the phrasing is pressing
var (
	criticalKeywords = []string{"urgence", "tout de suite", "immediatement"}
	highKeywords     = []string{"urgent", "vite", "rapidement", "absolument", "ne pas oublier", "n'oublie pas", "important"}
)

// ClassifyCategory buckets the utterance by keyword counting, the same way
// context detection works for meeting notes. No keyword hit lands in
// "other" with a penalty confidence so the aggregate scores low.
func ClassifyCategory(text string) (model.Category, float64) {
	folded := fold(text)

	best := model.CategoryOther
	bestCount := 0
	for _, bucket := range categoryKeywords {
		count := 0
		for _, kw := range bucket.keywords {
			if strings.Contains(folded, kw) {
				count++
			}
		}
		if count > bestCount {
			best = bucket.category
			bestCount = count
		}
	}

	if bestCount == 0 {
		return model.CategoryOther, categoryConfidenceNone
	}

	confidence := 0.5 + 0.15*float64(bestCount)
	if confidence > 0.9 {
		confidence = 0.9
	}
	return best, confidence
}

// ClassifyUrgency derives urgency from phrasing, escalated by a near-term
// resolved date
func ClassifyUrgency(text string, date model.DateInfo, now time.Time) model.Urgency {
	folded := fold(text)

	for _, kw := range criticalKeywords {
		if strings.Contains(folded, kw) {
			return model.UrgencyCritical
		}
	}

	urgency := model.UrgencyNormal
	for _, kw := range highKeywords {
		if strings.Contains(folded, kw) {
			urgency = model.UrgencyHigh
			break
		}
	}

	// A due date within the next 24 hours is pressing by itself
	if urgency == model.UrgencyNormal && date.Parsed != nil {
		if d := date.Parsed.Sub(now); d >= 0 && d < 24*time.Hour {
			urgency = model.UrgencyHigh
		}
	}

	return urgency
}
