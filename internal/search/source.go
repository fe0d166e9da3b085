// Package search retrieves ranked external evidence for a claim. The adapter
// boundary guarantees downstream stages always receive a non-empty,
// well-typed sequence: any failure is folded into a single sentinel Evidence
// item carrying the diagnostic.
package search

import (
	"context"

	"github.com/claimlens/claimlens/internal/model"
)

// Source finds candidate evidence for a claim. Implementations must never
// return an empty slice or an error: on failure they return the sentinel.
// Ordering is the source's own relevance ranking and must be preserved
// downstream.
type Source interface {
	FindEvidence(ctx context.Context, claimText string) []model.Evidence
}
