package extract

import (
	"fmt"

	"famtask/internal/model"
)

// Confidence bands for child resolution. An exact first-name hit is worth
// more than a nickname-only hit; the bands matter more than the numbers.
const (
	childConfidenceExact    = 0.9
	childConfidenceNickname = 0.7
	childConfidenceNone     = 0.2
)

// ResolveChild scans the text for each household child's first name and
// nicknames, case-insensitively and ignoring diacritics. When several
// distinct children match, the first one in household order wins and a
// warning is recorded: a slightly wrong assignee beats a lost task.
func ResolveChild(text string, children []model.Child) (*model.ChildMatch, []string) {
	var (
		matches  []model.ChildMatch
		warnings []string
	)

	for _, child := range children {
		if containsFolded(text, child.Name) {
			matches = append(matches, model.ChildMatch{
				ID:         child.ID,
				Name:       child.Name,
				Kind:       model.MatchExact,
				Confidence: childConfidenceExact,
			})
			continue
		}
		for _, nick := range child.Nicknames {
			if containsFolded(text, nick) {
				matches = append(matches, model.ChildMatch{
					ID:         child.ID,
					Name:       child.Name,
					Kind:       model.MatchNickname,
					Confidence: childConfidenceNickname,
				})
				break
			}
		}
	}

	if len(matches) == 0 {
		return nil, nil
	}

	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		warnings = append(warnings, fmt.Sprintf(
			"several children mentioned (%v), keeping first match: %s", names, matches[0].Name))
	}

	best := matches[0]
	return &best, warnings
}
