// Package pipeline orchestrates one verification run: acquire text, extract
// claims, gather evidence per claim, judge stance per evidence item, score
// each claim, and assemble the credibility card.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/claimlens/claimlens/internal/acquire"
	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/card"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/score"
	"github.com/claimlens/claimlens/internal/search"
	"github.com/claimlens/claimlens/internal/stance"
	"github.com/claimlens/claimlens/internal/util"
)

// Pipeline wires the verification stages together.
type Pipeline struct {
	acquirer  *acquire.Acquirer
	extractor *extract.ClaimExtractor
	source    search.Source
	judge     stance.Judge
	renderer  *card.Renderer
	config    *model.Config
}

// Result contains the complete outcome of one verification run.
type Result struct {
	Run  *model.RunState
	Card model.CredibilityCard
}

// New creates a pipeline from configuration, constructing the production
// adapters for each collaborator.
func New(cfg *model.Config) (*Pipeline, error) {
	oracleCfg := llm.ConfigFromModel(cfg.Oracle, cfg.HTTP)
	provider, err := llm.NewProvider(oracleCfg)
	if err != nil {
		return nil, fmt.Errorf("oracle provider: %w", err)
	}

	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	fetcher := acquire.NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, robots)

	var ocr *acquire.OCRClient
	if cfg.OCR.APIKey != "" {
		ocr, err = acquire.NewOCRClient(cfg.OCR.APIKey, cfg.OCR.BaseURL, cfg.HTTP.Timeout)
		if err != nil {
			return nil, fmt.Errorf("OCR client: %w", err)
		}
	}

	var searchCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			searchCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			searchCache = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	authority := search.NewAuthorityClassifier(&cfg.Authority)

	return &Pipeline{
		acquirer:  acquire.NewAcquirer(fetcher, ocr),
		extractor: extract.NewClaimExtractor(provider, cfg.Output.Verbose),
		source:    search.NewSerpAPISource(cfg.Search, cfg.HTTP, searchCache, authority),
		judge:     stance.NewOracleJudge(provider),
		renderer:  card.NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}, nil
}

// NewWithCollaborators creates a pipeline with explicit collaborators.
// Used by tests to substitute deterministic doubles for the oracle-backed
// production adapters.
func NewWithCollaborators(cfg *model.Config, acquirer *acquire.Acquirer, extractor *extract.ClaimExtractor, source search.Source, judge stance.Judge) *Pipeline {
	return &Pipeline{
		acquirer:  acquirer,
		extractor: extractor,
		source:    source,
		judge:     judge,
		renderer:  card.NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}
}

// Verify runs the full pipeline for one input descriptor. Only text
// acquisition can fail the run; every later collaborator degrades to typed
// results (empty claims, sentinel evidence, NEI judgments), so a run that
// gets past acquisition always produces a complete, renderable result.
func (p *Pipeline) Verify(ctx context.Context, in acquire.Input) (*Result, error) {
	run := model.NewRunState(acquire.Subject(in), in.URL)

	text, err := p.acquirer.Acquire(ctx, in)
	if err != nil {
		return nil, err
	}

	run.Claims = p.extractor.Extract(ctx, text)
	p.progress("✓ Extracted %d claims\n", len(run.Claims))

	p.verifyClaims(ctx, run)

	return &Result{
		Run:  run,
		Card: card.Assemble(run),
	}, nil
}

// claimOutcome carries one claim's results out of its verification goroutine
type claimOutcome struct {
	evidence   []model.Evidence
	judgments  []model.StanceJudgment
	assessment model.RiskAssessment
}

// verifyClaims processes all claims concurrently. Claims share no mutable
// state: each goroutine writes only its own indexed slot, and the run maps
// are populated after the join.
func (p *Pipeline) verifyClaims(ctx context.Context, run *model.RunState) {
	if len(run.Claims) == 0 {
		return
	}

	claimWorkers := p.config.Concurrency.ClaimWorkers
	if claimWorkers <= 0 {
		claimWorkers = 1
	}

	outcomes := make([]claimOutcome, len(run.Claims))
	semaphore := make(chan struct{}, claimWorkers)
	var wg sync.WaitGroup

	for i, claim := range run.Claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				// Cancelled before starting: empty judgment set still yields
				// a valid (provisional) assessment
				outcomes[idx] = claimOutcome{assessment: score.ScoreRisk(c, nil)}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			outcomes[idx] = p.verifyOne(ctx, c)
		}(i, claim)
	}

	wg.Wait()

	for i, claim := range run.Claims {
		run.Evidence[claim.ID] = outcomes[i].evidence
		run.Judgments[claim.ID] = outcomes[i].judgments
		run.Assessments[claim.ID] = outcomes[i].assessment
	}
}

// verifyOne runs evidence retrieval, stance classification, and scoring for
// a single claim. The per-evidence stance calls run concurrently and join
// before aggregation, since scoring requires the complete judgment set.
func (p *Pipeline) verifyOne(ctx context.Context, claim model.Claim) claimOutcome {
	p.progress("⚙ Verifying: %s\n", claim.Text)

	evidence := p.source.FindEvidence(ctx, claim.Text)

	stanceWorkers := p.config.Concurrency.StanceWorkers
	if stanceWorkers <= 0 {
		stanceWorkers = 1
	}

	judgments := make([]model.StanceJudgment, len(evidence))
	semaphore := make(chan struct{}, stanceWorkers)
	var wg sync.WaitGroup

	for i, ev := range evidence {
		wg.Add(1)
		go func(idx int, e model.Evidence) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				judgments[idx] = model.StanceJudgment{
					ClaimID:     claim.ID,
					EvidenceURL: e.URL,
					Label:       model.StanceNEI,
					Confidence:  0.0,
					QuoteSpan:   "verification cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			judgments[idx] = p.judge.Judge(ctx, claim, e)
		}(i, ev)
	}

	// Aggregation barrier: scoring needs every judgment
	wg.Wait()

	return claimOutcome{
		evidence:   evidence,
		judgments:  judgments,
		assessment: score.ScoreRisk(claim, judgments),
	}
}

// RenderResult writes the run to the configured outputs
func (p *Pipeline) RenderResult(result *Result, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result.Run, result.Card, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.progress("✓ Wrote JSON: %s\n", jsonPath)
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result.Card, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.progress("✓ Wrote Markdown: %s\n", mdPath)
	}

	p.renderer.RenderSummary(result.Card)
	return nil
}

// progress prints a status line to stderr in verbose mode
func (p *Pipeline) progress(format string, args ...interface{}) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
