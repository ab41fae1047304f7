// Package prompts composes the advisor prompts for each workflow stage from
// tunable instructions, fixed output specifications, and per-call context.
package prompts

import (
	"fmt"
	"strings"
)

// System resolves stage instructions, preferring configured overrides over
// the built-in defaults.
type System interface {
	Instructions(stage Stage) (string, error)
	Compose(stage Stage, context string) (string, error)
}

type system struct {
	overrides map[Stage]string
}

// New creates a prompt system. Override keys must be valid stage names.
func New(overrides map[string]string) (System, error) {
	s := &system{overrides: make(map[Stage]string, len(overrides))}
	for key, text := range overrides {
		stage, err := ParseStage(key)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", key, err)
		}
		if strings.TrimSpace(text) != "" {
			s.overrides[stage] = text
		}
	}
	return s, nil
}

func (s *system) Instructions(stage Stage) (string, error) {
	if text, ok := s.overrides[stage]; ok {
		return text, nil
	}
	return Instructions(stage)
}

// Compose joins instructions, the output specification (if any), and the
// call context into a single prompt.
func (s *system) Compose(stage Stage, context string) (string, error) {
	instructions, err := s.Instructions(stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := Spec(stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	if spec != "" {
		sb.WriteString("\n\n")
		sb.WriteString(spec)
	}
	if context != "" {
		sb.WriteString("\n\n")
		sb.WriteString(context)
	}

	return sb.String(), nil
}
