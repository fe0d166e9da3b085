package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/util"
)

const defaultSerpBaseURL = "https://serpapi.com"

// SerpAPISource finds evidence through SerpAPI's Google engine.
type SerpAPISource struct {
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
	cache      cache.Cache // nil disables caching
	limiter    *util.Limiter
	authority  *AuthorityClassifier
}

// SerpAPI response structures (only the fields we consume)
type serpResponse struct {
	OrganicResults []struct {
		Link    string `json:"link"`
		Source  string `json:"source"`
		Date    string `json:"date"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
	Error string `json:"error,omitempty"`
}

// NewSerpAPISource creates a new SerpAPI evidence source. resultCache may be
// nil to disable caching.
func NewSerpAPISource(cfg model.SearchConfig, httpCfg model.HTTPConfig, resultCache cache.Cache, authority *AuthorityClassifier) *SerpAPISource {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultSerpBaseURL
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	ratePerSec := cfg.RatePerSec
	if ratePerSec <= 0 {
		ratePerSec = 2
	}

	return &SerpAPISource{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		maxResults: maxResults,
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, ""),
			},
		},
		cache:     resultCache,
		limiter:   util.NewLimiter(ratePerSec, cfg.RateBurst),
		authority: authority,
	}
}

// FindEvidence returns up to maxResults evidence items for claimText, in the
// engine's own relevance order. On misconfiguration or transport failure it
// returns a single sentinel item and never an error.
func (s *SerpAPISource) FindEvidence(ctx context.Context, claimText string) []model.Evidence {
	if s.apiKey == "" {
		return []model.Evidence{model.SentinelEvidence("SERPAPI_API_KEY not set")}
	}

	key := cache.SearchKey(claimText, s.maxResults)
	if s.cache != nil {
		if data, found := s.cache.Get(key); found {
			var cached []model.Evidence
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	evidence, err := s.query(ctx, claimText)
	if err != nil {
		return []model.Evidence{model.SentinelEvidence(fmt.Sprintf("search API error: %v", err))}
	}

	// Cache only real results; sentinel-free by construction here
	if s.cache != nil && len(evidence) > 0 {
		if data, err := json.Marshal(evidence); err == nil {
			_ = s.cache.Set(key, data, 0)
		}
	}

	if len(evidence) == 0 {
		return []model.Evidence{model.SentinelEvidence("search returned no results")}
	}

	return evidence
}

// query performs one search API call
func (s *SerpAPISource) query(ctx context.Context, claimText string) ([]model.Evidence, error) {
	if err := s.limiter.Wait(ctx, s.baseURL); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", claimText)
	params.Set("api_key", s.apiKey)
	params.Set("engine", "google")
	params.Set("num", strconv.Itoa(s.maxResults))

	reqURL := fmt.Sprintf("%s/search.json?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var apiResp serpResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if apiResp.Error != "" {
		return nil, fmt.Errorf("search engine error: %s", apiResp.Error)
	}

	var evidence []model.Evidence
	for _, result := range apiResp.OrganicResults {
		if len(evidence) >= s.maxResults {
			break
		}

		ev := model.Evidence{
			URL:           result.Link,
			Domain:        result.Source,
			PublishedDate: result.Date,
			Snippet:       result.Snippet,
		}
		if ev.URL == "" {
			ev.URL = "#"
		}
		if ev.Domain == "" {
			ev.Domain = hostOf(ev.URL)
		}
		if ev.Snippet == "" {
			ev.Snippet = "No snippet available."
		}
		if s.authority != nil {
			ev.Authority = s.authority.Classify(ev.URL)
		}

		evidence = append(evidence, ev)
	}

	return evidence, nil
}

// hostOf extracts the host from a URL, or "N/A" when unparseable
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "N/A"
	}
	return parsed.Host
}

var _ Source = (*SerpAPISource)(nil)
