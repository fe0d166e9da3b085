package model

// RiskLevel is the coarse aggregated likelihood that a claim is misleading.
type RiskLevel string

const (
	RiskLow  RiskLevel = "LOW"
	RiskMed  RiskLevel = "MED"
	RiskHigh RiskLevel = "HIGH"
)

// RiskAssessment is the derived verdict for one claim. Exactly one per claim
// per run; recomputed wholesale whenever the judgment set changes, never
// patched in place.
type RiskAssessment struct {
	ClaimID   string    `json:"claim_id"` // References Claim.ID in the same run
	Risk      RiskLevel `json:"risk"`
	Score     float64   `json:"score"` // Clamped to [0,1]; higher = riskier
	Rationale string    `json:"rationale"`
}
