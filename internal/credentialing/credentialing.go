// Package credentialing checks a consultant's credentialing and privileging
// (C&P) application against policy rules.
package credentialing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/docket/pkg/formatting"
)

// ErrInvalidApplicant indicates an application without a name or email.
var ErrInvalidApplicant = errors.New("applicant requires name and email")

// Applicant is a C&P application. Details holds the complete application
// record as loaded, including the typed fields.
type Applicant struct {
	Name      string
	Email     string
	Specialty string
	Details   map[string]any
}

// NewApplicant builds an applicant from a decoded application record.
func NewApplicant(record map[string]any) (Applicant, error) {
	a := Applicant{
		Name:      stringField(record, "name"),
		Email:     stringField(record, "email"),
		Specialty: stringField(record, "specialty"),
		Details:   record,
	}
	if a.Name == "" || a.Email == "" {
		return Applicant{}, ErrInvalidApplicant
	}
	return a, nil
}

// Text renders the full application as indented JSON for advisor prompts.
func (a Applicant) Text() string {
	return formatting.Indent(a.Details)
}

// Policy is the C&P policy rule document.
type Policy struct {
	Rules map[string]any
}

// Text renders the rules as indented JSON for advisor prompts.
func (p Policy) Text() string {
	return formatting.Indent(p.Rules)
}

// Result is the outcome of one verification.
type Result struct {
	ApplicantName  string
	ApplicantEmail string
	Specialty      string
	Compliant      bool
	MissingItems   []string
	Justification  string
}

// Status renders the compliance outcome for the activity log.
func (r Result) Status() string {
	if r.Compliant {
		return "COMPLIANT"
	}
	return "NON-COMPLIANT"
}

func stringField(record map[string]any, key string) string {
	v, ok := record[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
