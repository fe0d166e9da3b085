// Package extract turns raw input text into a deduplicated, stably-identified
// sequence of claims using a language-understanding oracle.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

const extractSystemPrompt = "You are an expert fact-checker. You extract clear, verifiable factual claims from text."

// ClaimExtractor extracts claims from plain text via an oracle provider.
type ClaimExtractor struct {
	provider llm.Provider
	verbose  bool
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(provider llm.Provider, verbose bool) *ClaimExtractor {
	return &ClaimExtractor{
		provider: provider,
		verbose:  verbose,
	}
}

// Extract returns the claims found in text, in order of first mention, with
// duplicates collapsed. Empty or non-factual input yields an empty slice.
// Oracle failures (timeout, malformed output, no provider configured) also
// degrade to an empty slice rather than an error: "no claims found" and
// "extraction failed" are the same observable outcome at this boundary.
func (e *ClaimExtractor) Extract(ctx context.Context, text string) []model.Claim {
	if strings.TrimSpace(text) == "" || e.provider == nil {
		return nil
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:       extractSystemPrompt,
		Prompt:       buildExtractPrompt(text),
		Temperature:  0.3,
		JSONResponse: true,
	})
	if err != nil {
		if e.verbose {
			fmt.Fprintf(os.Stderr, "claim extraction failed: %v\n", err)
		}
		return nil
	}

	texts, err := parseClaimTexts(resp.Text)
	if err != nil {
		if e.verbose {
			fmt.Fprintf(os.Stderr, "claim extraction returned malformed output: %v\n", err)
		}
		return nil
	}

	return dedupeClaims(texts)
}

// buildExtractPrompt constructs the extraction prompt
func buildExtractPrompt(text string) string {
	return fmt.Sprintf(`Extract clear, verifiable factual claims from the following text.
Identify claims that can be proven or disproven with external evidence.
Skip opinions, predictions, and rhetorical statements.

Respond with a JSON object of the form {"claims": ["claim one", "claim two"]}.
Each entry must be a single self-contained claim. If no verifiable claims are
found, respond with {"claims": []}.

Example:
Text: "The company's new product, the 'FusionX', was released on May 15, 2024. It is the first device to use quantum-powered batteries, which allow it to run for up to 500 hours on a single charge."
Output: {"claims": ["The company's new product, the 'FusionX', was released on May 15, 2024.", "The FusionX is the first device to use quantum-powered batteries.", "The FusionX can run for up to 500 hours on a single charge."]}

Text: """
%s
"""
Output:`, text)
}

// parseClaimTexts parses the oracle output. Accepts either the requested
// {"claims": [...]} object or a bare JSON array.
func parseClaimTexts(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var wrapped struct {
		Claims []string `json:"claims"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil {
		return wrapped.Claims, nil
	}

	var bare []string
	if err := json.Unmarshal([]byte(raw), &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("output is neither a claims object nor a string array")
}

// dedupeClaims assigns IDs, preserving first-mention order and collapsing
// exact and near-exact textual repeats.
func dedupeClaims(texts []string) []model.Claim {
	seen := make(map[string]bool)
	var claims []model.Claim

	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		key := normalizeClaimText(text)
		if seen[key] {
			continue
		}
		seen[key] = true
		claims = append(claims, model.NewClaim(text))
	}

	return claims
}

// normalizeClaimText folds case, whitespace, and trailing punctuation so that
// near-duplicate extractions collapse to one claim.
func normalizeClaimText(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	lower = strings.TrimRight(lower, ".!? ")
	return strings.Join(strings.Fields(lower), " ")
}
