// Package stance classifies the relationship between one evidence snippet and
// one claim. The adapter boundary guarantees exactly one StanceJudgment per
// attempted (claim, evidence) pair: failures degrade to NEI with confidence
// 0.0 and a diagnostic quote instead of being dropped, so aggregation always
// sees the complete set.
package stance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

const judgeSystemPrompt = "You are an expert fact-checker. You judge whether a piece of evidence supports or refutes a claim, citing only the evidence given."

// Judge produces one stance judgment for one (claim, evidence) pair.
type Judge interface {
	Judge(ctx context.Context, claim model.Claim, evidence model.Evidence) model.StanceJudgment
}

// OracleJudge classifies stance via an oracle provider. The oracle is invoked
// once per evidence item, never batched, because each judgment must cite a
// quote drawn only from its own snippet.
type OracleJudge struct {
	provider llm.Provider
}

// NewOracleJudge creates a new oracle-backed stance judge
func NewOracleJudge(provider llm.Provider) *OracleJudge {
	return &OracleJudge{provider: provider}
}

// judgmentPayload is the JSON shape requested from the oracle
type judgmentPayload struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	QuoteSpan  string  `json:"quote_span"`
}

// Judge returns the stance of evidence relative to claim. It always returns
// a judgment; oracle failure or malformed output yields NEI / 0.0 with the
// diagnostic carried in the quote span.
func (j *OracleJudge) Judge(ctx context.Context, claim model.Claim, evidence model.Evidence) model.StanceJudgment {
	if j.provider == nil {
		return failedJudgment(claim.ID, evidence.URL, "no oracle provider configured")
	}

	resp, err := j.provider.Complete(ctx, llm.CompletionRequest{
		System:       judgeSystemPrompt,
		Prompt:       buildJudgePrompt(claim.Text, evidence),
		Temperature:  0.2,
		JSONResponse: true,
	})
	if err != nil {
		return failedJudgment(claim.ID, evidence.URL, fmt.Sprintf("oracle error: %v", err))
	}

	payload, err := parseJudgment(resp.Text)
	if err != nil {
		return failedJudgment(claim.ID, evidence.URL, fmt.Sprintf("malformed oracle output: %v", err))
	}

	quote := strings.TrimSpace(payload.QuoteSpan)
	// The quote must be verbatim from this snippet; anything else is a
	// citation leak and gets blanked.
	if quote != "" && !strings.Contains(evidence.Snippet, quote) {
		quote = ""
	}

	return model.StanceJudgment{
		ClaimID:     claim.ID,
		EvidenceURL: evidence.URL,
		Label:       model.ParseStanceLabel(strings.ToUpper(strings.TrimSpace(payload.Label))),
		Confidence:  clamp01(payload.Confidence),
		QuoteSpan:   quote,
	}
}

// buildJudgePrompt constructs the stance classification prompt
func buildJudgePrompt(claimText string, evidence model.Evidence) string {
	return fmt.Sprintf(`Determine the stance of the EVIDENCE relative to the CLAIM.
The stance is one of three labels: SUPPORT, REFUTE, or NEI (Not Enough Info).
Also extract the direct quote from the EVIDENCE that best justifies your label.

CLAIM: %q

EVIDENCE (snippet from %s): %q

Respond with a JSON object with these keys:
- "label": SUPPORT, REFUTE, or NEI
- "confidence": a score from 0.0 to 1.0
- "quote_span": the exact quote from the EVIDENCE snippet that justifies the label

Example output:
{"label": "SUPPORT", "confidence": 0.95, "quote_span": "The device can run for up to 500 hours on a single charge"}

Output:`, claimText, evidence.Domain, evidence.Snippet)
}

// parseJudgment parses the oracle's JSON output
func parseJudgment(raw string) (*judgmentPayload, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var payload judgmentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// failedJudgment builds the degraded NEI judgment for a failed attempt
func failedJudgment(claimID, evidenceURL, diagnostic string) model.StanceJudgment {
	return model.StanceJudgment{
		ClaimID:     claimID,
		EvidenceURL: evidenceURL,
		Label:       model.StanceNEI,
		Confidence:  0.0,
		QuoteSpan:   diagnostic,
	}
}

// clamp01 clamps v into [0,1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
