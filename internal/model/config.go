package model

import "time"

// Config is the complete claimlens configuration.
// Hierarchy (highest to lowest priority): CLI flags, CLAIMLENS_* environment
// variables, ~/.claimlens/config.yaml, defaults.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Search      SearchConfig      `yaml:"search" json:"search"`
	Oracle      OracleConfig      `yaml:"oracle" json:"oracle"`
	OCR         OCRConfig         `yaml:"ocr" json:"ocr"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	Authority   AuthorityConfig   `yaml:"authority" json:"authority"`
}

// HTTPConfig controls the outbound HTTP clients (page fetch, search, OCR).
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	RespectRobots bool         `yaml:"respect_robots" json:"respect_robots"`
}

// SearchConfig controls the evidence source adapter.
type SearchConfig struct {
	APIKey     string  `yaml:"api_key,omitempty" json:"-"` // SERPAPI_API_KEY
	BaseURL    string  `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	MaxResults int     `yaml:"max_results" json:"max_results"` // Upper bound on evidence per claim
	RatePerSec float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
	RateBurst  int     `yaml:"rate_burst" json:"rate_burst"`
}

// OracleConfig selects and tunes the language-understanding backend used for
// claim extraction and stance classification.
type OracleConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // openai, anthropic, ollama
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"api_key,omitempty" json:"-"`
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds, per call
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// OCRConfig controls screenshot text extraction (OCR.space API).
type OCRConfig struct {
	APIKey  string `yaml:"api_key,omitempty" json:"-"` // OCR_SPACE_API_KEY
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
}

// CacheConfig controls the evidence-search cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir,omitempty" json:"dir,omitempty"` // Disk layer; empty = memory only
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig bounds the fan-out of independent verification tasks.
type ConcurrencyConfig struct {
	ClaimWorkers  int `yaml:"claim_workers" json:"claim_workers"`   // Claims verified in parallel
	StanceWorkers int `yaml:"stance_workers" json:"stance_workers"` // Stance calls in parallel within one claim
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// AuthorityConfig customizes source authority classification.
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains,omitempty" json:"primary_domains,omitempty"`
	SecondaryDomains []string          `yaml:"secondary_domains,omitempty" json:"secondary_domains,omitempty"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" json:"domain_map,omitempty"` // host → tier name override
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Claimlens/0.2 (+https://github.com/claimlens/claimlens)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Search: SearchConfig{
			MaxResults: 10,
			RatePerSec: 2,
			RateBurst:  5,
		},
		Oracle: OracleConfig{
			Provider:  "openai",
			Model:     "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers:  4,
			StanceWorkers: 5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"who.int", "nih.gov", "europa.eu", "un.org", "nature.com", "doi.org",
			},
			SecondaryDomains: []string{
				"wikipedia.org", "britannica.com", "reuters.com", "apnews.com", "bbc.com", "bbc.co.uk",
			},
		},
	}
}
