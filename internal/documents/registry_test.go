package documents_test

import (
	"errors"
	"testing"
	"time"

	"github.com/JaimeStill/docket/internal/documents"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

var reference = date("2025-10-30")

func sample() []documents.Document {
	return []documents.Document{
		{DocID: "D001", Title: "Hand Hygiene Policy", Type: documents.TypePolicy, Status: documents.StatusActive, ExpiryDate: date("2025-03-15")},
		{DocID: "D002", Title: "Blood Transfusion WI", Type: documents.TypeWorkInstruction, Status: documents.StatusActive, ExpiryDate: date("2025-12-29")},
		{DocID: "D003", Title: "Cutoff Plus One", Type: documents.TypeForm, Status: documents.StatusActive, ExpiryDate: date("2025-12-30")},
		{DocID: "D004", Title: "Retired Form", Type: documents.TypeForm, Status: documents.StatusRetired, ExpiryDate: date("2025-01-01")},
		{DocID: "D005", Title: "Undated", Type: documents.TypeForm, Status: documents.StatusActive},
		{DocID: "D006", Title: "Far Future", Type: documents.TypePolicy, Status: documents.StatusActive, ExpiryDate: date("2027-01-01")},
	}
}

func TestExpiring(t *testing.T) {
	reg, err := documents.NewRegistry(sample())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		name    string
		horizon int
		want    []string
	}{
		{"60 day horizon inclusive cutoff", 60, []string{"D001", "D002"}},
		{"61 day horizon", 61, []string{"D001", "D002", "D003"}},
		{"zero horizon", 0, []string{"D001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.Expiring(reference.AddDate(0, 0, tt.horizon))
			ids := make([]string, len(got))
			for i, d := range got {
				ids[i] = d.DocID
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("Expiring = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("Expiring[%d] = %s, want %s", i, ids[i], tt.want[i])
				}
			}
		})
	}
}

func TestExpiringProperty(t *testing.T) {
	reg, _ := documents.NewRegistry(sample())
	cutoff := reference.AddDate(0, 0, 60)

	selected := map[string]bool{}
	for _, d := range reg.Expiring(cutoff) {
		selected[d.DocID] = true
	}

	for _, d := range reg.All() {
		want := d.Status == documents.StatusActive && !d.ExpiryDate.IsZero() && !d.ExpiryDate.After(cutoff)
		if selected[d.DocID] != want {
			t.Errorf("%s selected = %v, want %v", d.DocID, selected[d.DocID], want)
		}
	}
}

func TestMutations(t *testing.T) {
	reg, _ := documents.NewRegistry(sample())

	if !reg.UpdateReviewDate("D001", reference) {
		t.Fatal("UpdateReviewDate(D001) = false")
	}
	if !reg.SetStatus("D001", documents.StatusRenewed) {
		t.Fatal("SetStatus(D001) = false")
	}

	d, ok := reg.Find("D001")
	if !ok {
		t.Fatal("Find(D001) missing")
	}
	if !d.ReviewDate.Equal(reference) || d.Status != documents.StatusRenewed {
		t.Errorf("D001 = %+v", d)
	}

	if reg.UpdateReviewDate("D999", reference) || reg.SetStatus("D999", documents.StatusRetired) {
		t.Error("mutation of missing document should report false")
	}

	if len(reg.Expiring(reference.AddDate(0, 0, 60))) != 1 {
		t.Error("renewed document should leave the expiring set")
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	docs := append(sample(), documents.Document{DocID: "D001"})
	if _, err := documents.NewRegistry(docs); !errors.Is(err, documents.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
	if _, err := documents.NewRegistry([]documents.Document{{Title: "x"}}); !errors.Is(err, documents.ErrMissingID) {
		t.Errorf("err = %v, want ErrMissingID", err)
	}
}

func TestParseType(t *testing.T) {
	tests := map[string]documents.Type{
		"Policy":           documents.TypePolicy,
		" wi ":             documents.TypeWorkInstruction,
		"Work Instruction": documents.TypeWorkInstruction,
		"Form":             documents.TypeForm,
		"Guideline":        documents.Type("Guideline"),
	}
	for in, want := range tests {
		if got := documents.ParseType(in); got != want {
			t.Errorf("ParseType(%q) = %q, want %q", in, got, want)
		}
	}
}
