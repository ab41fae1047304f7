package formatting_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/docket/pkg/formatting"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"valid", "2025-10-30", time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC), false},
		{"surrounding whitespace", " 2025-03-15 ", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"wrong layout", "15/03/2025", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatting.FormatDate(time.Time{}); got != "" {
		t.Errorf("FormatDate(zero) = %q, want empty", got)
	}
	d := time.Date(2025, 12, 10, 15, 4, 5, 0, time.UTC)
	if got := formatting.FormatDate(d); got != "2025-12-10" {
		t.Errorf("FormatDate = %q, want 2025-12-10", got)
	}
}

func TestDaysBetween(t *testing.T) {
	ref := time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same day", ref, 0},
		{"future", time.Date(2025, 11, 29, 0, 0, 0, 0, time.UTC), 30},
		{"past", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), -229},
		{"time of day ignored", time.Date(2025, 10, 31, 23, 59, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.DaysBetween(ref, tt.to); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}
