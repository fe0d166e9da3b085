package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/acquire"
	"github.com/claimlens/claimlens/internal/pipeline"
)

// Verifier defines the interface for verifying one input
type Verifier interface {
	Verify(ctx context.Context, in acquire.Input) (*pipeline.Result, error)
}

// VerifyJob represents one URL verification job
type VerifyJob struct {
	URL      string
	Verifier Verifier
}

// Execute executes the verification job
func (j *VerifyJob) Execute(ctx context.Context) Result {
	result, err := j.Verifier.Verify(ctx, acquire.Input{Kind: acquire.InputURL, URL: j.URL})
	if err != nil {
		return &VerifyResult{URL: j.URL, Error: err}
	}
	return &VerifyResult{URL: j.URL, Outcome: result}
}

// VerifyResult represents the result of a verification job
type VerifyResult struct {
	URL     string
	Outcome *pipeline.Result
	Error   error
}

// GetError returns the error from the verification result
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple URLs concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessURLs verifies multiple URLs concurrently
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*VerifyResult {
	if len(urls) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&VerifyJob{
			URL:      url,
			Verifier: b.verifier,
		})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}

	return verifyResults
}

// ProcessFile reads URLs from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file (one per line), skipping blanks,
// comments, and duplicates.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
