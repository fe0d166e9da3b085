// Package card assembles and renders the credibility card, the per-run
// summary artifact combining claims, risk assessments, and top cited
// evidence.
package card

import (
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

// TopN is how many supporting and refuting judgments each section cites.
const TopN = 3

// Assemble builds a CredibilityCard value from the final run state. It
// produces one section per extracted claim in extraction order; a claim
// whose assessment is missing still gets a section (rendered "not available")
// rather than being skipped. Judgments are partitioned by label and truncated
// to the first TopN in production order — no re-ranking by confidence.
func Assemble(run *model.RunState) model.CredibilityCard {
	card := model.CredibilityCard{
		Title:       "Credibility Card",
		GeneratedAt: time.Now().UTC(),
	}
	if run.Subject != "" {
		card.Title = "Credibility Card: " + run.Subject
	}

	for _, claim := range run.Claims {
		section := model.CardSection{
			Claim:         claim,
			TopSupporting: []model.StanceJudgment{},
			TopRefuting:   []model.StanceJudgment{},
		}

		if assessment, ok := run.Assessments[claim.ID]; ok {
			a := assessment
			section.Assessment = &a
		}

		for _, j := range run.Judgments[claim.ID] {
			switch j.Label {
			case model.StanceSupport:
				if len(section.TopSupporting) < TopN {
					section.TopSupporting = append(section.TopSupporting, j)
				}
			case model.StanceRefute:
				if len(section.TopRefuting) < TopN {
					section.TopRefuting = append(section.TopRefuting, j)
				}
			}
		}

		card.Sections = append(card.Sections, section)
	}

	return card
}
