package review_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/prompts"
	"github.com/JaimeStill/docket/internal/review"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		advisor       advisor.Advisor
		want          string
		wantAction    string
		wantFallbacks int
	}{
		{
			name: "advisor text",
			advisor: advisor.Func(func(context.Context, advisor.Request) (advisor.Response, error) {
				return advisor.Response{Text: "Align with current WHO hand hygiene guidance."}, nil
			}),
			want:       "Align with current WHO hand hygiene guidance.",
			wantAction: "Analysis Complete: Generated LLM summary for D001.",
		},
		{
			name:          "advisor failure",
			advisor:       advisor.Unavailable(),
			want:          review.FallbackSummary,
			wantAction:    "API Error: LLM call failed for D001.",
			wantFallbacks: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			journal := audit.NewActivity(&buf, time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC))
			p, _ := prompts.New(nil)

			got := review.NewSummarizer(tt.advisor, p, journal).Summarize(context.Background(), "D001", "Hand Hygiene Policy")

			if got != tt.want {
				t.Errorf("Summarize = %q, want %q", got, tt.want)
			}
			if !strings.Contains(buf.String(), tt.wantAction) {
				t.Errorf("log missing %q:\n%s", tt.wantAction, buf.String())
			}
			if journal.Fallbacks() != tt.wantFallbacks {
				t.Errorf("Fallbacks() = %d, want %d", journal.Fallbacks(), tt.wantFallbacks)
			}
		})
	}
}
