// Package types provides type definitions for structured data used throughout the candidate-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// PII entity type labels produced by the detection engine.
const (
	PIITypeName     = "NAME"
	PIITypeEmail    = "EMAIL"
	PIITypePhone    = "PHONE"
	PIITypeURL      = "URL"
	PIITypeLocation = "LOCATION"
)

// PIIEntity represents a detected PII span with its location and type.
type PIIEntity struct {
	EntityType  string  `json:"entity_type"`
	Text        string  `json:"text"`
	StartChar   int     `json:"start_char"`
	EndChar     int     `json:"end_char"`
	Confidence  float64 `json:"confidence" validate:"gte=0,lte=100"`
	Replacement string  `json:"replacement"`
}

// CandidateDetail is the contact card extracted from detected PII.
// Name, email, phone and location hold the first detected occurrence;
// URLs holds every detected URL.
type CandidateDetail struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	URLs     []string `json:"urls"`
	Location string   `json:"location"`
}

// RedactedResume holds the original and redacted text as two independent
// strings plus the entity list explaining the diff between them.
type RedactedResume struct {
	ID           string      `json:"id"`
	OriginalText string      `json:"original_text"`
	RedactedText string      `json:"redacted_text"`
	PIIEntities  []PIIEntity `json:"pii_entities"`
	ProcessedAt  time.Time   `json:"processed_at"`
}
