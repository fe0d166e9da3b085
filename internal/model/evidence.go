package model

// SentinelDomain marks an Evidence item that carries a retrieval diagnostic
// instead of a real search result. The snippet holds the error message so a
// reader can tell "no evidence exists" from "evidence retrieval failed".
const SentinelDomain = "error"

// Evidence represents one externally-sourced snippet retrieved as potentially
// relevant to a claim. Not persisted beyond one verification run; within a
// claim's result set its only identity is the URL.
type Evidence struct {
	URL           string        `json:"url"`                      // Full URL of the source page
	Domain        string        `json:"domain"`                   // Publishing domain
	PublishedDate string        `json:"published_date,omitempty"` // As reported by the source, empty if unknown
	Snippet       string        `json:"snippet"`                  // Text excerpt from the source
	Authority     AuthorityTier `json:"authority,omitempty"`      // Source authority classification (annotation only)
}

// SentinelEvidence builds the degraded item returned when evidence retrieval
// fails, so downstream stages always receive a non-empty, well-typed sequence.
func SentinelEvidence(diagnostic string) Evidence {
	return Evidence{
		URL:     "#",
		Domain:  SentinelDomain,
		Snippet: diagnostic,
	}
}

// IsSentinel reports whether this item is a retrieval-failure marker.
func (e Evidence) IsSentinel() bool {
	return e.Domain == SentinelDomain
}

// AuthorityTier represents the classification of source authority.
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Laws, statutes, academic papers, official documents
	TierSecondary AuthorityTier = 2 // Encyclopedias, major publishers, reputable media
	TierTertiary  AuthorityTier = 3 // Blogs, personal websites, aggregators
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}
