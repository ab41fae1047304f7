package staff

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/docket/internal/audit"
)

const agent = "Utility"

// Directory resolves staff by email or approval role. It is immutable once
// built and safe for concurrent reads.
type Directory struct {
	records  []Record
	byEmail  map[string]int
	fallback Record
	recorder audit.Recorder
}

// NewDirectory builds a directory from records in load order. The fallback
// identity is the roster entry for fallbackEmail; when absent, a synthetic
// "Default QMR" record carrying fallbackEmail is used. Later duplicates of
// an email are ignored.
func NewDirectory(records []Record, fallbackEmail string, recorder audit.Recorder) *Directory {
	d := &Directory{
		records:  make([]Record, 0, len(records)),
		byEmail:  make(map[string]int, len(records)),
		recorder: recorder,
	}

	for _, r := range records {
		key := normalize(r.Email)
		if key == "" {
			continue
		}
		if _, dup := d.byEmail[key]; dup {
			continue
		}
		d.byEmail[key] = len(d.records)
		d.records = append(d.records, r)
	}

	if i, ok := d.byEmail[normalize(fallbackEmail)]; ok {
		d.fallback = d.records[i]
	} else {
		d.fallback = Record{
			Email:        fallbackEmail,
			Name:         "Default QMR",
			Position:     "QMR",
			ApprovalRole: "Approver",
		}
	}

	return d
}

// Lookup returns the record for email. It never fails: on a miss it records
// an error entry and returns the fallback record.
func (d *Directory) Lookup(email string) Record {
	if r, ok := d.Find(email); ok {
		return r
	}
	d.recorder.Record(agent, "Error", fmt.Sprintf("Staff email %s not found in HR list. Defaulting to QMR.", email))
	return d.fallback
}

// Find returns the record for email without substituting the fallback.
func (d *Directory) Find(email string) (Record, bool) {
	i, ok := d.byEmail[normalize(email)]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}

// FindByRole returns the first record in load order whose approval role
// equals role.
func (d *Directory) FindByRole(role string) (Record, bool) {
	for _, r := range d.records {
		if r.ApprovalRole == role {
			return r, true
		}
	}
	return Record{}, false
}

// Fallback returns the fallback identity.
func (d *Directory) Fallback() Record {
	return d.fallback
}

// All returns the roster in load order.
func (d *Directory) All() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Len returns the number of roster entries.
func (d *Directory) Len() int {
	return len(d.records)
}

// Roster renders every record as a listing line, one per line.
func (d *Directory) Roster() string {
	lines := make([]string, len(d.records))
	for i, r := range d.records {
		lines[i] = r.Listing()
	}
	return strings.Join(lines, "\n")
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
