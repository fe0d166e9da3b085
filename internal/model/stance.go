package model

// StanceLabel is the relationship between one evidence item and one claim.
type StanceLabel string

const (
	StanceSupport StanceLabel = "SUPPORT" // Evidence supports the claim
	StanceRefute  StanceLabel = "REFUTE"  // Evidence contradicts the claim
	StanceNEI     StanceLabel = "NEI"     // Not Enough Information
)

// ParseStanceLabel coerces oracle output into a valid label. Anything
// unrecognized degrades to NEI rather than failing.
func ParseStanceLabel(s string) StanceLabel {
	switch StanceLabel(s) {
	case StanceSupport, StanceRefute, StanceNEI:
		return StanceLabel(s)
	default:
		return StanceNEI
	}
}

// StanceJudgment is the verdict for exactly one (claim, evidence) pair.
// A failed classification still produces a judgment with label NEI and
// confidence 0.0, never a dropped entry, so aggregation always sees the
// complete set.
type StanceJudgment struct {
	ClaimID     string      `json:"claim_id"`     // References Claim.ID in the same run
	EvidenceURL string      `json:"evidence_url"` // References Evidence.URL
	Label       StanceLabel `json:"label"`
	Confidence  float64     `json:"confidence"` // Clamped to [0,1]
	QuoteSpan   string      `json:"quote_span"` // Verbatim substring of the evidence snippet, or diagnostic on failure
}
