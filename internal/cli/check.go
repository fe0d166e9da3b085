package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/claimlens/claimlens/internal/acquire"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	inputText      string
	inputImagePath string
	outJSON        string
	outMD          string
	timeout        time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	noRobots       bool
	noFooter       bool
	maxResults     int
	claimWorkers   int
	stanceWorkers  int
	httpProxy      string
	httpsProxy     string
	oracleProvider string
	oracleModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [url]",
	Short: "Verify the claims in a URL, pasted text, or screenshot",
	Long: `Check runs the full verification pipeline on one input:
- Extract verifiable factual claims from the input text
- Retrieve independent evidence for each claim (web search)
- Judge each evidence snippet as SUPPORT, REFUTE, or NEI
- Aggregate judgments into a per-claim risk level and score
- Assemble a shareable credibility card

Exactly one input is required: a URL argument, --text, or --image.

Example:
  claimlens check https://example.com/article
  claimlens check --text "The FusionX was released on May 15, 2024."
  claimlens check --image screenshot.png --md card.md
  claimlens check https://example.com --oracle-provider ollama --oracle-model llama3.1:8b`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Input flags
	checkCmd.Flags().StringVar(&inputText, "text", "", "verify pasted text instead of a URL")
	checkCmd.Flags().StringVar(&inputImagePath, "image", "", "verify text extracted from a screenshot (PNG/JPG)")

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown credibility card path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown cards")

	// HTTP flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "overall verification timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", "Claimlens/0.2 (+https://github.com/claimlens/claimlens)", "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read when fetching a URL")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the evidence search cache")
	checkCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks when fetching a URL")
	checkCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	checkCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Pipeline flags
	checkCmd.Flags().IntVar(&maxResults, "max-results", 10, "max evidence items per claim")
	checkCmd.Flags().IntVar(&claimWorkers, "claim-workers", 4, "claims verified in parallel")
	checkCmd.Flags().IntVar(&stanceWorkers, "stance-workers", 5, "stance calls in parallel per claim")

	// Oracle flags
	checkCmd.Flags().StringVar(&oracleProvider, "oracle-provider", "openai", "oracle provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&oracleModel, "oracle-model", "", "oracle model name (provider default if empty)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	in, err := resolveInput(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	result, err := p.Verify(ctx, in)
	if err != nil {
		var failure *acquire.Failure
		if errors.As(err, &failure) {
			return fmt.Errorf("could not read input (%s): %s", failure.Kind, failure.Reason)
		}
		return fmt.Errorf("verification failed: %w", err)
	}

	if err := p.RenderResult(result, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// resolveInput maps flags and args to exactly one input descriptor
func resolveInput(args []string) (acquire.Input, error) {
	provided := 0
	if len(args) == 1 {
		provided++
	}
	if inputText != "" {
		provided++
	}
	if inputImagePath != "" {
		provided++
	}
	if provided != 1 {
		return acquire.Input{}, fmt.Errorf("provide exactly one input: a URL argument, --text, or --image")
	}

	switch {
	case len(args) == 1:
		return acquire.Input{Kind: acquire.InputURL, URL: args[0]}, nil
	case inputText != "":
		return acquire.Input{Kind: acquire.InputText, Text: inputText}, nil
	default:
		image, err := os.ReadFile(inputImagePath)
		if err != nil {
			return acquire.Input{}, fmt.Errorf("read image: %w", err)
		}
		return acquire.Input{Kind: acquire.InputImage, Image: image}, nil
	}
}

// buildConfig assembles configuration from flags and environment
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.HTTP.Timeout = 30 * time.Second
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache
	cfg.Search.MaxResults = maxResults
	cfg.Concurrency.ClaimWorkers = claimWorkers
	cfg.Concurrency.StanceWorkers = stanceWorkers
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	cfg.Search.APIKey = os.Getenv("SERPAPI_API_KEY")
	cfg.OCR.APIKey = os.Getenv("OCR_SPACE_API_KEY")

	cfg.Oracle.Provider = oracleProvider
	cfg.Oracle.Model = oracleModel
	switch oracleProvider {
	case "openai":
		cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Oracle.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.Oracle.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Oracle.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Oracle.BaseURL = baseURL
		}
	}

	return cfg, nil
}
