package extract

import "strings"

// French filler words removed before interpretation. Kept conservative:
// removing too much distorts the utterance.
var noisePatterns = []string{
	"euh", "heu", "ben alors", "bon alors", "alors voila", "voila",
	"du coup", "en fait", "tu vois",
}

// CleanTranscript strips common speech fillers from a transcript before
// extraction
func CleanTranscript(transcript string) string {
	cleaned := transcript
	for _, pattern := range noisePatterns {
		cleaned = replaceFolded(cleaned, pattern)
	}

	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return strings.TrimSpace(cleaned)
}

// replaceFolded removes pattern occurrences case-insensitively. Works on
// whole words only so "euh" does not eat into "heureux".
func replaceFolded(s, pattern string) string {
	words := strings.Fields(s)
	out := words[:0]
	i := 0
	patternWords := strings.Fields(pattern)
	for i < len(words) {
		if matchesAt(words, i, patternWords) {
			i += len(patternWords)
			continue
		}
		out = append(out, words[i])
		i++
	}
	return strings.Join(out, " ")
}

func matchesAt(words []string, i int, pattern []string) bool {
	if i+len(pattern) > len(words) {
		return false
	}
	for j, pw := range pattern {
		if fold(strings.Trim(words[i+j], ",.!?")) != pw {
			return false
		}
	}
	return true
}
