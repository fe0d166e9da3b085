package model

import "time"

// CredibilityCard is the final per-run summary artifact. It is a pure value
// object: rendering to a document (Markdown, PDF, HTML) is a collaborator's
// job driven entirely by this shape.
type CredibilityCard struct {
	Title       string        `json:"title"`
	GeneratedAt time.Time     `json:"generated_at"`
	Sections    []CardSection `json:"sections"` // One per extracted claim, in extraction order
}

// CardSection groups one claim with its assessment and top cited evidence.
// A claim with a missing assessment still produces a section so the card
// always enumerates every claim that was extracted.
type CardSection struct {
	Claim         Claim            `json:"claim"`
	Assessment    *RiskAssessment  `json:"assessment,omitempty"` // nil when scoring never ran for this claim
	TopSupporting []StanceJudgment `json:"top_supporting"`       // First N SUPPORT judgments in production order
	TopRefuting   []StanceJudgment `json:"top_refuting"`         // First N REFUTE judgments in production order
}
