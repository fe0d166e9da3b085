package model

import "github.com/google/uuid"

// Claim represents a discrete, independently verifiable factual assertion
// extracted from input text. Identity is the ID, never the text: two claims
// may carry equal text but distinct IDs if produced by separate extraction
// runs. Immutable after creation.
type Claim struct {
	ID          string   `json:"id"`                     // Opaque stable identifier
	Text        string   `json:"text"`                   // The claim text itself
	Entities    []string `json:"entities,omitempty"`     // Named entities mentioned (optional)
	TimeContext string   `json:"time_context,omitempty"` // Temporal anchor, e.g. "May 2024" (optional)
}

// NewClaim creates a claim with a fresh globally-unique ID.
func NewClaim(text string) Claim {
	return Claim{
		ID:   uuid.NewString(),
		Text: text,
	}
}
