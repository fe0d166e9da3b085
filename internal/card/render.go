package card

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Renderer writes credibility cards to distributable formats. It consumes
// only the card value; layout here is one concrete rendering collaborator,
// not part of the pipeline contract.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full run state as JSON
func (r *Renderer) RenderJSON(run *model.RunState, card model.CredibilityCard, path string) error {
	report := struct {
		*model.RunState
		Card model.CredibilityCard `json:"card"`
	}{run, card}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the credibility card as a Markdown document
func (r *Renderer) RenderMarkdown(card model.CredibilityCard, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", card.Title)
	fmt.Fprintf(&b, "Last verified: %s\n\n", card.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	b.WriteString("---\n\n")

	for _, section := range card.Sections {
		fmt.Fprintf(&b, "## Claim: %s\n\n", section.Claim.Text)

		if section.Assessment != nil {
			fmt.Fprintf(&b, "**Risk Level:** %s (score: %.2f)\n\n", section.Assessment.Risk, section.Assessment.Score)
			fmt.Fprintf(&b, "**Rationale:** %s\n\n", section.Assessment.Rationale)
		} else {
			b.WriteString("**Risk Level:** not available\n\n")
			b.WriteString("**Rationale:** not available\n\n")
		}

		if len(section.TopSupporting) > 0 {
			b.WriteString("### Top supporting sources\n\n")
			writeJudgments(&b, section.TopSupporting)
		}
		if len(section.TopRefuting) > 0 {
			b.WriteString("### Top refuting sources\n\n")
			writeJudgments(&b, section.TopRefuting)
		}
		if len(section.TopSupporting) == 0 && len(section.TopRefuting) == 0 {
			b.WriteString("No sources clearly supported or refuted this claim.\n\n")
		}

		b.WriteString("---\n\n")
	}

	if r.includeFooter {
		b.WriteString("*Generated by claimlens. This card describes how well claims are supported by public sources; it does not assert truth. Verify important claims with primary sources.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// writeJudgments writes one cited-source list
func writeJudgments(w io.Writer, judgments []model.StanceJudgment) {
	for _, j := range judgments {
		fmt.Fprintf(w, "- <%s> (confidence %.2f)\n", j.EvidenceURL, j.Confidence)
		if j.QuoteSpan != "" {
			fmt.Fprintf(w, "  > %q\n", j.QuoteSpan)
		}
	}
	fmt.Fprintln(w)
}

// RenderSummary prints a short per-claim verdict table to stdout
func (r *Renderer) RenderSummary(card model.CredibilityCard) {
	fmt.Println()
	fmt.Printf("═══ %s ═══\n", card.Title)
	fmt.Println()

	if len(card.Sections) == 0 {
		fmt.Println("No verifiable claims found.")
		return
	}

	for i, section := range card.Sections {
		fmt.Printf("%d. %s\n", i+1, section.Claim.Text)
		if section.Assessment != nil {
			fmt.Printf("   Risk: %-4s  Score: %.2f  %s\n", section.Assessment.Risk, section.Assessment.Score, section.Assessment.Rationale)
		} else {
			fmt.Printf("   Risk: not available\n")
		}
	}
	fmt.Println()
}
