package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple URLs from a file in parallel",
	Long: `Batch verifies multiple URLs concurrently:
- Read URLs from input file (one per line, # comments allowed)
- Verify URLs in parallel with configurable worker count
- Each run fans out its own evidence and stance calls
- Write one JSON report and Markdown card per URL

Example:
  claimlens batch urls.txt
  claimlens batch urls.txt --concurrency 8 --output-dir ./cards
  claimlens batch urls.txt --timeout 20m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent verification runs")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimlens-cards", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch verifying %s with %d workers\n", file, concurrency)

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return err
	}

	succeeded := 0
	for _, result := range results {
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Error)
			continue
		}

		base := filepath.Join(outputDir, slugify(result.URL))
		if err := p.RenderResult(result.Outcome, base+".json", base+".md"); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: render: %v\n", result.URL, err)
			continue
		}
		succeeded++
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d/%d verified\n", succeeded, len(results))
	return nil
}

// slugify turns a URL into a safe file name stem
func slugify(rawURL string) string {
	s := strings.TrimPrefix(rawURL, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
	s = strings.Trim(s, "-")
	if len(s) > 80 {
		s = s[:80]
	}
	if s == "" {
		s = "report"
	}
	return s
}
