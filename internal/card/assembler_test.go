package card

import (
	"strings"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
)

func buildRun() (*model.RunState, model.Claim, model.Claim) {
	run := model.NewRunState("Test Subject", "")
	scored := model.NewClaim("Scored claim")
	unscored := model.NewClaim("Unscored claim")
	run.Claims = []model.Claim{scored, unscored}

	run.Assessments[scored.ID] = model.RiskAssessment{
		ClaimID:   scored.ID,
		Risk:      model.RiskLow,
		Score:     0.3,
		Rationale: "Multiple sources independently support this claim.",
	}
	return run, scored, unscored
}

func TestAssemble_SectionPerClaim(t *testing.T) {
	run, scored, unscored := buildRun()

	result := Assemble(run)

	if len(result.Sections) != len(run.Claims) {
		t.Fatalf("Expected %d sections, got %d", len(run.Claims), len(result.Sections))
	}
	if result.Sections[0].Claim.ID != scored.ID {
		t.Error("Expected extraction order preserved")
	}
	if result.Sections[0].Assessment == nil {
		t.Error("Expected assessment on scored claim's section")
	}
	// A claim with a missing assessment still gets a section
	if result.Sections[1].Claim.ID != unscored.ID {
		t.Error("Expected unscored claim to keep its section")
	}
	if result.Sections[1].Assessment != nil {
		t.Error("Expected nil assessment for unscored claim")
	}
	if !strings.Contains(result.Title, "Test Subject") {
		t.Errorf("Expected subject in title, got %q", result.Title)
	}
	if result.GeneratedAt.IsZero() {
		t.Error("Expected generation timestamp")
	}
}

func TestAssemble_TopThreePartition(t *testing.T) {
	run, scored, _ := buildRun()

	// Five SUPPORT, two REFUTE, one NEI, interleaved in production order
	labels := []model.StanceLabel{
		model.StanceSupport, model.StanceRefute, model.StanceSupport, model.StanceNEI,
		model.StanceSupport, model.StanceSupport, model.StanceRefute, model.StanceSupport,
	}
	for i, label := range labels {
		run.Judgments[scored.ID] = append(run.Judgments[scored.ID], model.StanceJudgment{
			ClaimID:     scored.ID,
			EvidenceURL: "https://example.com/" + string(rune('a'+i)),
			Label:       label,
			Confidence:  float64(i) / 10, // later items more confident, must NOT re-rank
		})
	}

	result := Assemble(run)
	section := result.Sections[0]

	if len(section.TopSupporting) != TopN {
		t.Fatalf("Expected %d supporting, got %d", TopN, len(section.TopSupporting))
	}
	if len(section.TopRefuting) != 2 {
		t.Fatalf("Expected 2 refuting, got %d", len(section.TopRefuting))
	}
	// Production order, not confidence order
	if section.TopSupporting[0].EvidenceURL != "https://example.com/a" {
		t.Errorf("Expected first-produced SUPPORT first, got %s", section.TopSupporting[0].EvidenceURL)
	}
	if section.TopSupporting[2].EvidenceURL != "https://example.com/e" {
		t.Errorf("Expected third-produced SUPPORT third, got %s", section.TopSupporting[2].EvidenceURL)
	}
	for _, j := range section.TopSupporting {
		if j.Label != model.StanceSupport {
			t.Errorf("Non-SUPPORT judgment in supporting list: %s", j.Label)
		}
	}
}

func TestAssemble_EmptyRun(t *testing.T) {
	run := model.NewRunState("", "")

	result := Assemble(run)

	if len(result.Sections) != 0 {
		t.Errorf("Expected no sections for empty run, got %d", len(result.Sections))
	}
	if result.Title != "Credibility Card" {
		t.Errorf("Expected default title, got %q", result.Title)
	}
}

func TestLessons(t *testing.T) {
	if Lesson("lateral_reading") == "" {
		t.Error("Expected lateral_reading lesson to exist")
	}
	if Lesson("LATERAL_READING ") == "" {
		t.Error("Expected topic lookup to be case- and space-insensitive")
	}
	if Lesson("nope") != "" {
		t.Error("Expected empty string for unknown topic")
	}
	topics := LessonTopics()
	if len(topics) < 2 {
		t.Errorf("Expected at least 2 topics, got %v", topics)
	}
}
