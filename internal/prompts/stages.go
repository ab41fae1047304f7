package prompts

import "slices"

// Stage identifies the workflow step a prompt is composed for.
type Stage string

// Valid workflow stages.
const (
	StageUrgency Stage = "urgency"
	StageRouting Stage = "routing"
	StageVerify  Stage = "verify"
	StageDraft   Stage = "draft"
	StageReview  Stage = "review"
	StageSummary Stage = "summary"
)

var stages = []Stage{
	StageUrgency,
	StageRouting,
	StageVerify,
	StageDraft,
	StageReview,
	StageSummary,
}

// Stages returns the list of valid workflow stages.
func Stages() []Stage {
	return stages
}

// ParseStage validates a string as a known workflow stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
