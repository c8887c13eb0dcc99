package extract

import (
	"fmt"
	"strings"

	"famtask/internal/model"
)

// BuildExtractionPrompt builds the system and user prompts for the LLM
// extraction call. The household roster is embedded so the model resolves
// names against known ids instead of inventing them.
func BuildExtractionPrompt(text, language string, household model.HouseholdContext) (string, string) {
	systemPrompt := `Tu es l'assistant d'extraction de FamTask, une application de gestion des tâches familiales.
Tu reçois la transcription d'une phrase dictée par un parent et tu en extrais une tâche structurée.
Tu dois être précis et factuel. N'invente JAMAIS d'information absente de la transcription.
Réponds UNIQUEMENT en JSON valide, avec TOUS les champs demandés, même vides.

RÈGLES:
- child_id: l'identifiant EXACT d'un enfant de la liste fournie, ou "" si aucun enfant n'est mentionné
- date_phrase: l'expression temporelle telle qu'elle apparaît dans le texte ("demain", "le 15 mars"), ou ""
- date_type: "relative", "absolute" ou "none"
- category: "medical", "school", "chores", "shopping", "activity" ou "other"
- urgency: "low", "normal", "high" ou "critical"
- action: "create_task" ou "create_reminder"`

	var roster strings.Builder
	for _, c := range household.Children {
		fmt.Fprintf(&roster, "- id=%s nom=%s", c.ID, c.Name)
		if len(c.Nicknames) > 0 {
			fmt.Fprintf(&roster, " surnoms=%s", strings.Join(c.Nicknames, ", "))
		}
		roster.WriteString("\n")
	}
	if roster.Len() == 0 {
		roster.WriteString("(aucun enfant)\n")
	}

	userPrompt := fmt.Sprintf(`Transcription (langue: %s):
"""
%s
"""

Enfants du foyer:
%s
Retourne EXACTEMENT ce format JSON:

{
  "action": "create_task",
  "child_id": "",
  "date_phrase": "",
  "date_type": "none",
  "category": "other",
  "urgency": "normal",
  "confidence": 0.0,
  "warnings": []
}`, language, text, roster.String())

	return systemPrompt, userPrompt
}
