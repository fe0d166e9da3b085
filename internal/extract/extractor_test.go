package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/claimlens/claimlens/internal/llm"
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

func TestExtract_EmptyInput(t *testing.T) {
	extractor := NewClaimExtractor(&fakeProvider{response: `{"claims": ["should never be called"]}`}, false)

	claims := extractor.Extract(context.Background(), "")
	if len(claims) != 0 {
		t.Errorf("Expected no claims for empty input, got %d", len(claims))
	}

	claims = extractor.Extract(context.Background(), "   \n\t ")
	if len(claims) != 0 {
		t.Errorf("Expected no claims for whitespace input, got %d", len(claims))
	}
}

func TestExtract_NoProvider(t *testing.T) {
	extractor := NewClaimExtractor(nil, false)

	claims := extractor.Extract(context.Background(), "The Earth orbits the Sun.")
	if len(claims) != 0 {
		t.Errorf("Expected no claims without a provider, got %d", len(claims))
	}
}

func TestExtract_OracleFailureDegradesToEmpty(t *testing.T) {
	extractor := NewClaimExtractor(&fakeProvider{err: errors.New("timeout")}, false)

	claims := extractor.Extract(context.Background(), "The Earth orbits the Sun.")
	if len(claims) != 0 {
		t.Errorf("Expected empty claims on oracle failure, got %d", len(claims))
	}
}

func TestExtract_MalformedOutputDegradesToEmpty(t *testing.T) {
	extractor := NewClaimExtractor(&fakeProvider{response: "I could not find any claims, sorry!"}, false)

	claims := extractor.Extract(context.Background(), "Some text with claims.")
	if len(claims) != 0 {
		t.Errorf("Expected empty claims on malformed output, got %d", len(claims))
	}
}

func TestExtract_ParsesClaimsObject(t *testing.T) {
	extractor := NewClaimExtractor(&fakeProvider{
		response: `{"claims": ["The FusionX was released on May 15, 2024.", "The FusionX uses quantum batteries."]}`,
	}, false)

	claims := extractor.Extract(context.Background(), "input text")

	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(claims))
	}
	if claims[0].Text != "The FusionX was released on May 15, 2024." {
		t.Errorf("Unexpected first claim: %s", claims[0].Text)
	}
	if claims[0].ID == "" || claims[1].ID == "" {
		t.Error("Expected every claim to get an ID")
	}
	if claims[0].ID == claims[1].ID {
		t.Error("Expected distinct IDs per claim")
	}
}

func TestExtract_ParsesBareArrayAndCodeFence(t *testing.T) {
	extractor := NewClaimExtractor(&fakeProvider{
		response: "```json\n[\"Claim one.\", \"Claim two.\"]\n```",
	}, false)

	claims := extractor.Extract(context.Background(), "input text")
	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(claims))
	}
}

func TestExtract_CollapsesDuplicates(t *testing.T) {
	extractor := NewClaimExtractor(&fakeProvider{
		response: `{"claims": ["The sky is blue.", "The sky is blue.", "the sky is blue", "  The   sky is blue. ", "The grass is green."]}`,
	}, false)

	claims := extractor.Extract(context.Background(), "input text")

	if len(claims) != 2 {
		t.Fatalf("Expected near-duplicates to collapse to 2 claims, got %d", len(claims))
	}
	// First-mention order preserved
	if claims[0].Text != "The sky is blue." {
		t.Errorf("Expected first mention to survive, got %s", claims[0].Text)
	}
	if claims[1].Text != "The grass is green." {
		t.Errorf("Expected second distinct claim, got %s", claims[1].Text)
	}
}

func TestExtract_FreshIDsAcrossRuns(t *testing.T) {
	extractor := NewClaimExtractor(&fakeProvider{response: `{"claims": ["Same claim."]}`}, false)

	first := extractor.Extract(context.Background(), "input")
	second := extractor.Extract(context.Background(), "input")

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("Expected one claim per run")
	}
	if first[0].ID == second[0].ID {
		t.Error("Expected identity to be the ID, not the text: separate runs must mint fresh IDs")
	}
}
