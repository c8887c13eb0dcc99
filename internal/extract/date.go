package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"famtask/internal/model"
)

const (
	dateConfidenceAbsolute = 0.9
	dateConfidenceRelative = 0.8
	dateConfidenceNone     = 0.2
)

// relativePhrase maps a folded French temporal phrase to its resolution
// against a reference time. Longer phrases are listed first so "demain"
// does not shadow "après-demain".
type relativePhrase struct {
	phrase  string
	resolve func(now time.Time) time.Time
}

var relativePhrases = []relativePhrase{
	{"apres-demain", func(now time.Time) time.Time { return startOfDay(now).AddDate(0, 0, 2) }},
	{"apres demain", func(now time.Time) time.Time { return startOfDay(now).AddDate(0, 0, 2) }},
	{"demain matin", func(now time.Time) time.Time { return startOfDay(now).AddDate(0, 0, 1).Add(9 * time.Hour) }},
	{"demain soir", func(now time.Time) time.Time { return startOfDay(now).AddDate(0, 0, 1).Add(19 * time.Hour) }},
	{"demain", func(now time.Time) time.Time { return startOfDay(now).AddDate(0, 0, 1) }},
	{"la semaine prochaine", func(now time.Time) time.Time { return startOfDay(now).AddDate(0, 0, 7) }},
	{"semaine prochaine", func(now time.Time) time.Time { return startOfDay(now).AddDate(0, 0, 7) }},
	{"ce week-end", nextSaturday},
	{"ce weekend", nextSaturday},
	{"cet apres-midi", func(now time.Time) time.Time { return startOfDay(now).Add(15 * time.Hour) }},
	{"ce matin", func(now time.Time) time.Time { return startOfDay(now).Add(9 * time.Hour) }},
	{"ce soir", func(now time.Time) time.Time { return startOfDay(now).Add(19 * time.Hour) }},
	{"aujourd'hui", startOfDay},
	{"aujourd hui", startOfDay},
}

var weekdayNames = map[string]time.Weekday{
	"lundi":    time.Monday,
	"mardi":    time.Tuesday,
	"mercredi": time.Wednesday,
	"jeudi":    time.Thursday,
	"vendredi": time.Friday,
	"samedi":   time.Saturday,
	"dimanche": time.Sunday,
}

var monthNames = map[string]time.Month{
	"janvier":   time.January,
	"fevrier":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"aout":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"decembre":  time.December,
}

var (
	inDaysRe   = regexp.MustCompile(`dans (\d{1,2}) jours?`)
	numericRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})(?:er)? (janvier|fevrier|mars|avril|mai|juin|juillet|aout|septembre|octobre|novembre|decembre)\b`)
	weekdayRe  = regexp.MustCompile(`\b(lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche)\b`)
)

// ResolveDate recognizes relative French phrases and absolute date
// mentions. Matching runs on the folded text; Raw carries the phrase
// verbatim from the original. Absence of any temporal phrase is not an
// error: the type tag is "none" and no due date gets proposed downstream.
func ResolveDate(text string, now time.Time) model.DateInfo {
	folded := fold(text)

	// Absolute mentions win over relative phrases: "le 15 mars" is more
	// specific than a stray "demain" elsewhere in the utterance.
	if m := dayMonthRe.FindStringSubmatchIndex(folded); m != nil {
		day, _ := strconv.Atoi(folded[m[2]:m[3]])
		month := monthNames[folded[m[4]:m[5]]]
		parsed := nextOccurrenceOfDate(now, month, day)
		return model.DateInfo{
			Raw:        rawPhrase(text, folded, m[0], m[1]),
			Parsed:     &parsed,
			Type:       model.DateAbsolute,
			Confidence: dateConfidenceAbsolute,
		}
	}

	if m := numericRe.FindStringSubmatchIndex(folded); m != nil {
		day, _ := strconv.Atoi(folded[m[2]:m[3]])
		month, _ := strconv.Atoi(folded[m[4]:m[5]])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			year := now.Year()
			hasYear := m[6] >= 0
			if hasYear {
				y, _ := strconv.Atoi(folded[m[6]:m[7]])
				if y < 100 {
					y += 2000
				}
				year = y
			}
			parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
			if !hasYear && parsed.Before(startOfDay(now)) {
				parsed = parsed.AddDate(1, 0, 0)
			}
			return model.DateInfo{
				Raw:        rawPhrase(text, folded, m[0], m[1]),
				Parsed:     &parsed,
				Type:       model.DateAbsolute,
				Confidence: dateConfidenceAbsolute,
			}
		}
	}

	for _, rp := range relativePhrases {
		if idx := strings.Index(folded, rp.phrase); idx >= 0 {
			parsed := rp.resolve(now)
			return model.DateInfo{
				Raw:        rawPhrase(text, folded, idx, idx+len(rp.phrase)),
				Parsed:     &parsed,
				Type:       model.DateRelative,
				Confidence: dateConfidenceRelative,
			}
		}
	}

	if m := inDaysRe.FindStringSubmatchIndex(folded); m != nil {
		days, _ := strconv.Atoi(folded[m[2]:m[3]])
		parsed := startOfDay(now).AddDate(0, 0, days)
		return model.DateInfo{
			Raw:        rawPhrase(text, folded, m[0], m[1]),
			Parsed:     &parsed,
			Type:       model.DateRelative,
			Confidence: dateConfidenceRelative,
		}
	}

	if m := weekdayRe.FindStringSubmatchIndex(folded); m != nil {
		parsed := nextWeekday(now, weekdayNames[folded[m[2]:m[3]]])
		return model.DateInfo{
			Raw:        rawPhrase(text, folded, m[0], m[1]),
			Parsed:     &parsed,
			Type:       model.DateRelative,
			Confidence: dateConfidenceRelative,
		}
	}

	return model.DateInfo{Type: model.DateNone, Confidence: dateConfidenceNone}
}

// rawPhrase maps a byte range matched on the folded text back to the
// verbatim phrase in the original. Folding drops combining marks after
// decomposition, so the rune count carries over one-to-one for the text
// this sees; if it ever does not, the folded slice is returned instead.
func rawPhrase(original, folded string, start, end int) string {
	runeStart := utf8.RuneCountInString(folded[:start])
	runeEnd := runeStart + utf8.RuneCountInString(folded[start:end])
	r := []rune(original)
	if utf8.RuneCountInString(folded) != len(r) || runeEnd > len(r) {
		return folded[start:end]
	}
	return string(r[runeStart:runeEnd])
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// nextWeekday returns the next occurrence of the weekday strictly after
// the reference day
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return startOfDay(now).AddDate(0, 0, days)
}

func nextSaturday(now time.Time) time.Time {
	return nextWeekday(now, time.Saturday)
}

// nextOccurrenceOfDate resolves "15 mars" to this year's date, or next
// year's if it already passed
func nextOccurrenceOfDate(now time.Time, month time.Month, day int) time.Time {
	parsed := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	if parsed.Before(startOfDay(now)) {
		parsed = parsed.AddDate(1, 0, 0)
	}
	return parsed
}
