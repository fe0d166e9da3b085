package model

import "time"

// RunState holds everything one verification run accumulates: the extracted
// claims plus evidence, judgments, and assessments keyed by claim ID. It is
// created at run start, populated stage by stage, and discarded (or rendered)
// at run end. Nothing here outlives the run.
type RunState struct {
	Subject   string    `json:"subject"`          // Human-readable subject of the input
	Source    string    `json:"source,omitempty"` // URL or input descriptor that was analyzed
	StartedAt time.Time `json:"started_at"`

	Claims      []Claim                     `json:"claims"`
	Evidence    map[string][]Evidence       `json:"evidence"`    // claim ID → ranked evidence
	Judgments   map[string][]StanceJudgment `json:"judgments"`   // claim ID → one judgment per evidence item
	Assessments map[string]RiskAssessment   `json:"assessments"` // claim ID → derived verdict
}

// NewRunState creates an empty run context.
func NewRunState(subject, source string) *RunState {
	return &RunState{
		Subject:     subject,
		Source:      source,
		StartedAt:   time.Now().UTC(),
		Evidence:    make(map[string][]Evidence),
		Judgments:   make(map[string][]StanceJudgment),
		Assessments: make(map[string]RiskAssessment),
	}
}
