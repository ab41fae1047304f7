package prompts

import "errors"

// ErrInvalidStage indicates an unrecognized workflow stage.
var ErrInvalidStage = errors.New("stage must be urgency, routing, verify, draft, review, or summary")
