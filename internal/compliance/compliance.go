// Package compliance records the official outcomes of both workflows:
// staff acknowledgments, registry updates, and granted privileges.
package compliance

import (
	"fmt"
	"time"

	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/documents"
	"github.com/JaimeStill/docket/internal/staff"
	"github.com/JaimeStill/docket/pkg/formatting"
)

const agent = "Compliance Agent"

// Recorder applies compliance outcomes to the registry and the audit log.
type Recorder struct {
	registry *documents.Registry
	journal  audit.Recorder
}

// NewRecorder creates a compliance recorder over registry.
func NewRecorder(registry *documents.Registry, journal audit.Recorder) *Recorder {
	return &Recorder{registry: registry, journal: journal}
}

// Acknowledge records the owner's acknowledgment of docID.
func (r *Recorder) Acknowledge(docID string, owner staff.Record) {
	r.journal.Record(agent, "Acknowledgment Logged",
		fmt.Sprintf("Official compliance record created for %s regarding '%s'.", owner.Name, docID))
}

// UpdateReviewDate sets the review date of docID. It reports false when the
// document is not in the registry.
func (r *Recorder) UpdateReviewDate(docID string, date time.Time) bool {
	if !r.registry.UpdateReviewDate(docID, date) {
		return false
	}
	r.journal.Record(agent, "Document Update", fmt.Sprintf("Updating review date for %s.", docID))
	r.journal.Record(agent, "Document Update Complete",
		fmt.Sprintf("%s review date updated to %s.", docID, formatting.FormatDate(date)))
	return true
}

// FinalizeStatus sets the final status of docID. It reports false when the
// document is not in the registry.
func (r *Recorder) FinalizeStatus(docID string, status documents.Status) bool {
	if !r.registry.SetStatus(docID, status) {
		return false
	}
	r.journal.Record(agent, "Final Record Update", fmt.Sprintf("Document %s status set to '%s'.", docID, status))
	return true
}

// GrantPrivileges records the final privileging decision for an applicant.
func (r *Recorder) GrantPrivileges(applicantName, specialty string) {
	r.journal.Record(agent, "Final C&P Approval Granted",
		fmt.Sprintf("Privileging granted for %s, specialty: %s.", applicantName, specialty))
}
