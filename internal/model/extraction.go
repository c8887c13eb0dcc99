package model

import "time"

// MatchKind distinguishes how a child reference was resolved
type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchNickname MatchKind = "nickname"
	MatchNone     MatchKind = "none"
)

// ChildMatch is a resolved reference to a household child
type ChildMatch struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       MatchKind `json:"kind"`
	Confidence float64   `json:"confidence"`
}

// DateType tags how a temporal phrase was interpreted
type DateType string

const (
	DateRelative DateType = "relative"
	DateAbsolute DateType = "absolute"
	DateNone     DateType = "none"
)

// DateInfo carries the verbatim temporal phrase, its resolution (nil when
// nothing was found) and the interpretation tag
type DateInfo struct {
	Raw        string     `json:"raw"`
	Parsed     *time.Time `json:"parsed,omitempty"`
	Type       DateType   `json:"type"`
	Confidence float64    `json:"confidence"`
}

// Category buckets a household task by domain
type Category string

const (
	CategoryMedical  Category = "medical"
	CategorySchool   Category = "school"
	CategoryChores   Category = "chores"
	CategoryShopping Category = "shopping"
	CategoryActivity Category = "activity"
	CategoryOther    Category = "other"
)

// Urgency classifies how pressing the spoken request sounded
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// SemanticExtraction is the structured interpretation of one transcription
type SemanticExtraction struct {
	ID                 string      `json:"id"`
	TranscriptionID    string      `json:"transcription_id"`
	Text               string      `json:"text"`
	Language           string      `json:"language"`
	Action             string      `json:"action"`
	Child              *ChildMatch `json:"child,omitempty"`
	Date               DateInfo    `json:"date"`
	Category           Category    `json:"category"`
	CategoryConfidence float64     `json:"category_confidence"`
	Urgency            Urgency     `json:"urgency"`
	OverallConfidence  float64     `json:"overall_confidence"`
	Warnings           []string    `json:"warnings"`
	CreatedAt          time.Time   `json:"created_at"`
}
