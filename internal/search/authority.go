package search

import (
	"net/url"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// AuthorityClassifier annotates evidence sources with an authority tier.
// This is presentation metadata for the credibility card; it never re-ranks
// or filters what the search engine returned.
type AuthorityClassifier struct {
	config       *model.AuthorityConfig
	primaryMap   map[string]bool
	secondaryMap map[string]bool
}

// NewAuthorityClassifier creates a new authority classifier
func NewAuthorityClassifier(config *model.AuthorityConfig) *AuthorityClassifier {
	if config == nil {
		config = &model.DefaultConfig().Authority
	}

	classifier := &AuthorityClassifier{
		config:       config,
		primaryMap:   make(map[string]bool),
		secondaryMap: make(map[string]bool),
	}

	for _, domain := range config.PrimaryDomains {
		classifier.primaryMap[domain] = true
	}
	for _, domain := range config.SecondaryDomains {
		classifier.secondaryMap[domain] = true
	}

	return classifier
}

// Classify classifies a URL into an authority tier
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.TierTertiary
	}

	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	// Explicit per-host overrides from config win
	if a.config.DomainMap != nil {
		if tierStr, ok := a.config.DomainMap[host]; ok {
			return parseTierString(tierStr)
		}
	}

	if matchesDomain(host, a.primaryMap) {
		return model.TierPrimary
	}
	if matchesDomain(host, a.secondaryMap) {
		return model.TierSecondary
	}

	// Government and academic TLDs count as primary even when unlisted
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// matchesDomain reports whether host equals or is a subdomain of any entry
func matchesDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for domain := range domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// parseTierString converts a tier name to an AuthorityTier
func parseTierString(tier string) model.AuthorityTier {
	switch strings.ToLower(tier) {
	case "primary", "1":
		return model.TierPrimary
	case "secondary", "2":
		return model.TierSecondary
	default:
		return model.TierTertiary
	}
}
