package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/claimlens/claimlens/internal/acquire"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/stance"
)

// fakeProvider implements llm.Provider with a canned response
type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Text: f.response, Model: "fake-model"}, nil
}

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

// fakeSource returns a fixed evidence slice for every claim
type fakeSource struct {
	evidence []model.Evidence
}

func (f *fakeSource) FindEvidence(ctx context.Context, claimText string) []model.Evidence {
	return f.evidence
}

// fakeJudge labels every pairing with a fixed stance
type fakeJudge struct {
	label model.StanceLabel
}

func (f *fakeJudge) Judge(ctx context.Context, claim model.Claim, ev model.Evidence) model.StanceJudgment {
	return model.StanceJudgment{
		ClaimID:     claim.ID,
		EvidenceURL: ev.URL,
		Label:       f.label,
		Confidence:  0.9,
		QuoteSpan:   "",
	}
}

func testPipeline(extractorResponse string, source *fakeSource, judge *fakeJudge) *Pipeline {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = false
	extractor := extract.NewClaimExtractor(&fakeProvider{response: extractorResponse}, false)
	acquirer := acquire.NewAcquirer(nil, nil)
	return NewWithCollaborators(cfg, acquirer, extractor, source, judge)
}

func TestVerify_TextInputFullRun(t *testing.T) {
	source := &fakeSource{evidence: []model.Evidence{
		{URL: "https://a.example/1", Domain: "a.example", Snippet: "one"},
		{URL: "https://b.example/2", Domain: "b.example", Snippet: "two"},
	}}
	p := testPipeline(`{"claims": ["First claim.", "Second claim."]}`, source, &fakeJudge{label: model.StanceSupport})

	result, err := p.Verify(context.Background(), acquire.Input{Kind: acquire.InputText, Text: "Some input text."})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	run := result.Run
	if len(run.Claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(run.Claims))
	}
	for _, claim := range run.Claims {
		if len(run.Evidence[claim.ID]) != 2 {
			t.Errorf("Expected 2 evidence items for claim %s, got %d", claim.ID, len(run.Evidence[claim.ID]))
		}
		// Exactly one judgment per (claim, evidence) pairing
		if len(run.Judgments[claim.ID]) != 2 {
			t.Errorf("Expected 2 judgments for claim %s, got %d", claim.ID, len(run.Judgments[claim.ID]))
		}
		assessment, ok := run.Assessments[claim.ID]
		if !ok {
			t.Fatalf("Expected assessment for claim %s", claim.ID)
		}
		// Unanimous support: 1.0 - 0.7*1.0 = 0.3, LOW
		if assessment.Risk != model.RiskLow || assessment.Score != 0.3 {
			t.Errorf("Expected LOW/0.3, got %s/%v", assessment.Risk, assessment.Score)
		}
	}
	if len(result.Card.Sections) != 2 {
		t.Errorf("Expected 2 card sections, got %d", len(result.Card.Sections))
	}
}

func TestVerify_JudgmentsKeepEvidenceOrder(t *testing.T) {
	source := &fakeSource{evidence: []model.Evidence{
		{URL: "https://a.example/1", Domain: "a.example", Snippet: "one"},
		{URL: "https://b.example/2", Domain: "b.example", Snippet: "two"},
		{URL: "https://c.example/3", Domain: "c.example", Snippet: "three"},
	}}
	p := testPipeline(`{"claims": ["Only claim."]}`, source, &fakeJudge{label: model.StanceNEI})

	result, err := p.Verify(context.Background(), acquire.Input{Kind: acquire.InputText, Text: "input"})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	claim := result.Run.Claims[0]
	judgments := result.Run.Judgments[claim.ID]
	if len(judgments) != 3 {
		t.Fatalf("Expected 3 judgments, got %d", len(judgments))
	}
	for i, want := range []string{"https://a.example/1", "https://b.example/2", "https://c.example/3"} {
		if judgments[i].EvidenceURL != want {
			t.Errorf("Judgment %d: expected %s, got %s", i, want, judgments[i].EvidenceURL)
		}
	}
}

func TestVerify_SentinelEvidenceStillJudged(t *testing.T) {
	source := &fakeSource{evidence: []model.Evidence{model.SentinelEvidence("search error: quota exceeded")}}
	p := testPipeline(`{"claims": ["Only claim."]}`, source, &fakeJudge{label: model.StanceNEI})

	result, err := p.Verify(context.Background(), acquire.Input{Kind: acquire.InputText, Text: "input"})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	claim := result.Run.Claims[0]
	if len(result.Run.Judgments[claim.ID]) != 1 {
		t.Fatalf("Expected the sentinel item to flow through stance, got %d judgments", len(result.Run.Judgments[claim.ID]))
	}
	assessment := result.Run.Assessments[claim.ID]
	// Single NEI judgment: nei/n > 0.5 branch
	if assessment.Risk != model.RiskMed || assessment.Score != 0.5 {
		t.Errorf("Expected MED/0.5, got %s/%v", assessment.Risk, assessment.Score)
	}
}

func TestVerify_NoClaimsExtracted(t *testing.T) {
	p := testPipeline("not json at all", &fakeSource{}, &fakeJudge{label: model.StanceNEI})

	result, err := p.Verify(context.Background(), acquire.Input{Kind: acquire.InputText, Text: "input"})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if len(result.Run.Claims) != 0 {
		t.Errorf("Expected no claims, got %d", len(result.Run.Claims))
	}
	if len(result.Card.Sections) != 0 {
		t.Errorf("Expected no sections, got %d", len(result.Card.Sections))
	}
}

func TestVerify_CancelledContextDegradesToNEI(t *testing.T) {
	source := &fakeSource{evidence: []model.Evidence{
		{URL: "https://a.example/1", Domain: "a.example", Snippet: "one"},
	}}
	p := testPipeline(`{"claims": ["Only claim."]}`, source, &fakeJudge{label: model.StanceSupport})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := p.Verify(ctx, acquire.Input{Kind: acquire.InputText, Text: "input"})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	// Cancellation degrades, never drops: every claim still gets an assessment
	// and a full card section
	if len(result.Run.Claims) == 0 {
		t.Fatal("Expected claims to survive cancellation")
	}
	for _, claim := range result.Run.Claims {
		if _, ok := result.Run.Assessments[claim.ID]; !ok {
			t.Errorf("Expected assessment for claim %s after cancellation", claim.ID)
		}
	}
	if len(result.Card.Sections) != len(result.Run.Claims) {
		t.Errorf("Expected a section per claim, got %d sections for %d claims",
			len(result.Card.Sections), len(result.Run.Claims))
	}
}

func TestVerify_AcquireFailureSurfaces(t *testing.T) {
	p := testPipeline(`{"claims": []}`, &fakeSource{}, &fakeJudge{label: model.StanceNEI})

	_, err := p.Verify(context.Background(), acquire.Input{Kind: acquire.InputImage, Image: []byte{1, 2, 3}})
	if err == nil {
		t.Fatal("Expected error for image input without OCR client")
	}
	if !strings.Contains(err.Error(), "OCR") {
		t.Errorf("Expected OCR diagnostic, got %v", err)
	}
}

var _ stance.Judge = (*fakeJudge)(nil)
