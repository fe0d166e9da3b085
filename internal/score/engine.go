// Package score turns a claim's complete set of stance judgments into one
// risk assessment. The engine is pure and deterministic: no I/O, no clock,
// no randomness. It is re-run wholesale whenever a claim's judgment set
// changes; assessments are never patched in place.
package score

import "github.com/claimlens/claimlens/internal/model"

// Rationale strings surfaced on the credibility card.
const (
	rationaleNoEvidence    = "No evidence found to evaluate this claim."
	rationaleRefuted       = "Multiple sources refute this claim."
	rationaleInsufficient  = "Lack of independent corroboration or sufficient evidence."
	rationaleWellSupported = "Multiple sources independently support this claim."
	rationalePartial       = "Some supporting evidence found, but not consistently corroborated."
	rationaleNoClear       = "No clear evidence found to support or refute the claim."
)

// ScoreRisk computes the risk assessment for a claim from the complete
// sequence of stance judgments produced for it. Branches are evaluated in
// precedence order; the first match wins:
//
//  1. no judgments            → MED, 0.75
//  2. refute > support        → HIGH, 0.2 + 0.8*refute/n (ties favor HIGH)
//  3. nei/n > 0.5 (strict)    → MED, 0.5
//  4. support > 0             → 1.0 - 0.7*support/n; LOW iff support/n > 0.8
//  5. otherwise               → MED, 0.75
//
// The strict comparison in branch 3 means a set that is exactly half NEI
// with no support or refute falls through to branch 5, not branch 3.
func ScoreRisk(claim model.Claim, judgments []model.StanceJudgment) model.RiskAssessment {
	// Empty set short-circuits before any ratio is computed
	if len(judgments) == 0 {
		return model.RiskAssessment{
			ClaimID:   claim.ID,
			Risk:      model.RiskMed,
			Score:     0.75,
			Rationale: rationaleNoEvidence,
		}
	}

	n := float64(len(judgments))
	var support, refute, nei float64
	for _, j := range judgments {
		switch j.Label {
		case model.StanceSupport:
			support++
		case model.StanceRefute:
			refute++
		default:
			nei++
		}
	}

	var risk model.RiskLevel
	var score float64
	var rationale string

	switch {
	case refute > support:
		risk = model.RiskHigh
		score = 0.2 + 0.8*(refute/n)
		rationale = rationaleRefuted

	case nei/n > 0.5:
		risk = model.RiskMed
		score = 0.5
		rationale = rationaleInsufficient

	case support > 0:
		score = 1.0 - 0.7*(support/n)
		if support/n > 0.8 {
			risk = model.RiskLow
			rationale = rationaleWellSupported
		} else {
			risk = model.RiskMed
			rationale = rationalePartial
		}

	default:
		risk = model.RiskMed
		score = 0.75
		rationale = rationaleNoClear
	}

	return model.RiskAssessment{
		ClaimID:   claim.ID,
		Risk:      risk,
		Score:     clamp01(score),
		Rationale: rationale,
	}
}

// clamp01 clamps v into [0,1] as a final guard regardless of branch
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
