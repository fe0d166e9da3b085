package score

import (
	"math"
	"reflect"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
)

func judgmentsWithLabels(claimID string, labels ...model.StanceLabel) []model.StanceJudgment {
	judgments := make([]model.StanceJudgment, len(labels))
	for i, label := range labels {
		judgments[i] = model.StanceJudgment{
			ClaimID:     claimID,
			EvidenceURL: "https://example.com",
			Label:       label,
			Confidence:  0.9,
		}
	}
	return judgments
}

func TestScoreRisk_EmptyJudgments(t *testing.T) {
	claim := model.NewClaim("The sky is green.")

	assessment := ScoreRisk(claim, nil)

	if assessment.ClaimID != claim.ID {
		t.Errorf("Expected claim ID %s, got %s", claim.ID, assessment.ClaimID)
	}
	if assessment.Risk != model.RiskMed {
		t.Errorf("Expected MED for empty judgments, got %s", assessment.Risk)
	}
	if assessment.Score != 0.75 {
		t.Errorf("Expected score 0.75 for empty judgments, got %v", assessment.Score)
	}
	if assessment.Rationale == "" {
		t.Error("Expected a rationale for empty judgments")
	}
}

func TestScoreRisk_RefuteMajority(t *testing.T) {
	claim := model.NewClaim("Test claim")
	judgments := judgmentsWithLabels(claim.ID, model.StanceRefute, model.StanceRefute)

	assessment := ScoreRisk(claim, judgments)

	if assessment.Risk != model.RiskHigh {
		t.Errorf("Expected HIGH, got %s", assessment.Risk)
	}
	// 0.2 + 0.8 * 2/2 = 1.0
	if assessment.Score != 1.0 {
		t.Errorf("Expected score 1.0, got %v", assessment.Score)
	}
}

func TestScoreRisk_RefuteTieBreaksHigh(t *testing.T) {
	// Refuting evidence dominates supporting evidence of lesser count even
	// when support is present: 2 refute vs 1 support.
	claim := model.NewClaim("Test claim")
	judgments := judgmentsWithLabels(claim.ID, model.StanceRefute, model.StanceRefute, model.StanceSupport)

	assessment := ScoreRisk(claim, judgments)

	if assessment.Risk != model.RiskHigh {
		t.Errorf("Expected HIGH when refute > support, got %s", assessment.Risk)
	}
	want := 0.2 + 0.8*(2.0/3.0)
	if math.Abs(assessment.Score-want) > 1e-9 {
		t.Errorf("Expected score %v, got %v", want, assessment.Score)
	}
}

func TestScoreRisk_AllSupport(t *testing.T) {
	claim := model.NewClaim("Test claim")
	judgments := judgmentsWithLabels(claim.ID,
		model.StanceSupport, model.StanceSupport, model.StanceSupport, model.StanceSupport)

	assessment := ScoreRisk(claim, judgments)

	if assessment.Risk != model.RiskLow {
		t.Errorf("Expected LOW for unanimous support, got %s", assessment.Risk)
	}
	// 1.0 - 0.7 * 4/4 = 0.3
	if math.Abs(assessment.Score-0.3) > 1e-9 {
		t.Errorf("Expected score 0.3, got %v", assessment.Score)
	}
}

func TestScoreRisk_NEIMajority(t *testing.T) {
	claim := model.NewClaim("Test claim")
	judgments := judgmentsWithLabels(claim.ID,
		model.StanceNEI, model.StanceNEI, model.StanceNEI, model.StanceSupport)

	assessment := ScoreRisk(claim, judgments)

	if assessment.Risk != model.RiskMed {
		t.Errorf("Expected MED for NEI majority, got %s", assessment.Risk)
	}
	if assessment.Score != 0.5 {
		t.Errorf("Expected score 0.5, got %v", assessment.Score)
	}
}

func TestScoreRisk_AllNEI(t *testing.T) {
	claim := model.NewClaim("Test claim")
	judgments := judgmentsWithLabels(claim.ID, model.StanceNEI, model.StanceNEI)

	assessment := ScoreRisk(claim, judgments)

	if assessment.Risk != model.RiskMed || assessment.Score != 0.5 {
		t.Errorf("Expected MED/0.5 for all-NEI, got %s/%v", assessment.Risk, assessment.Score)
	}
}

func TestScoreRisk_MixedBelowThresholds(t *testing.T) {
	// Equal support and refute with NEI exactly at 50%: refute branch not
	// taken (not strictly greater), NEI branch not taken (not strictly above
	// half), support branch wins.
	claim := model.NewClaim("Test claim")
	judgments := judgmentsWithLabels(claim.ID,
		model.StanceSupport, model.StanceRefute, model.StanceNEI, model.StanceNEI)

	assessment := ScoreRisk(claim, judgments)

	if assessment.Risk != model.RiskMed {
		t.Errorf("Expected MED, got %s", assessment.Risk)
	}
	want := 1.0 - 0.7*(1.0/4.0)
	if math.Abs(assessment.Score-want) > 1e-9 {
		t.Errorf("Expected score %v, got %v", want, assessment.Score)
	}
}

func TestScoreRisk_ThreeSupportOneRefute(t *testing.T) {
	claim := model.NewClaim("Test claim")
	judgments := judgmentsWithLabels(claim.ID,
		model.StanceSupport, model.StanceSupport, model.StanceSupport, model.StanceRefute)

	assessment := ScoreRisk(claim, judgments)

	// support/n = 0.75, not > 0.8, so MED not LOW
	if assessment.Risk != model.RiskMed {
		t.Errorf("Expected MED for 75%% support, got %s", assessment.Risk)
	}
	want := 1.0 - 0.7*0.75 // 0.475
	if math.Abs(assessment.Score-want) > 1e-9 {
		t.Errorf("Expected score %v, got %v", want, assessment.Score)
	}
}

func TestScoreRisk_FailedJudgmentsStillCounted(t *testing.T) {
	// A degraded NEI/0.0 judgment from a failed oracle call increases n and
	// shifts the ratios; it must not be dropped.
	claim := model.NewClaim("Test claim")

	supported := judgmentsWithLabels(claim.ID, model.StanceSupport, model.StanceSupport)
	withFailure := append(judgmentsWithLabels(claim.ID, model.StanceSupport, model.StanceSupport),
		model.StanceJudgment{ClaimID: claim.ID, EvidenceURL: "https://example.com", Label: model.StanceNEI, Confidence: 0.0, QuoteSpan: "oracle error: timeout"})

	before := ScoreRisk(claim, supported)
	after := ScoreRisk(claim, withFailure)

	if before.Score == after.Score {
		t.Error("Expected the extra NEI judgment to change the score")
	}
	// 2/2 support = LOW; 2/3 support = not > 0.8 → MED
	if before.Risk != model.RiskLow {
		t.Errorf("Expected LOW before failure, got %s", before.Risk)
	}
	if after.Risk != model.RiskMed {
		t.Errorf("Expected MED after failure, got %s", after.Risk)
	}
}

func TestScoreRisk_ScoreAlwaysInRange(t *testing.T) {
	claim := model.NewClaim("Test claim")
	labels := []model.StanceLabel{model.StanceSupport, model.StanceRefute, model.StanceNEI}

	// Exhaustive label mixes up to n=4
	var walk func(prefix []model.StanceLabel, depth int)
	walk = func(prefix []model.StanceLabel, depth int) {
		assessment := ScoreRisk(claim, judgmentsWithLabels(claim.ID, prefix...))
		if assessment.Score < 0 || assessment.Score > 1 {
			t.Errorf("Score out of range for %v: %v", prefix, assessment.Score)
		}
		switch assessment.Risk {
		case model.RiskLow, model.RiskMed, model.RiskHigh:
		default:
			t.Errorf("Invalid risk level for %v: %s", prefix, assessment.Risk)
		}
		if depth == 0 {
			return
		}
		for _, label := range labels {
			walk(append(prefix, label), depth-1)
		}
	}
	walk(nil, 4)
}

func TestScoreRisk_Deterministic(t *testing.T) {
	claim := model.NewClaim("Test claim")
	judgments := judgmentsWithLabels(claim.ID,
		model.StanceSupport, model.StanceNEI, model.StanceRefute, model.StanceSupport)

	first := ScoreRisk(claim, judgments)
	second := ScoreRisk(claim, judgments)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical assessments, got %+v and %+v", first, second)
	}
}
