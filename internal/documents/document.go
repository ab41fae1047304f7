// Package documents holds the controlled-document registry: the in-memory
// record set the lifecycle workflow scans and updates.
package documents

import (
	"strings"
	"time"
)

// Type classifies a controlled document.
type Type string

const (
	TypePolicy          Type = "Policy"
	TypeWorkInstruction Type = "WI"
	TypeForm            Type = "Form"
)

// ParseType normalizes a source type value. Unknown types are kept verbatim.
func ParseType(s string) Type {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "policy":
		return TypePolicy
	case "wi", "work instruction", "workinstruction":
		return TypeWorkInstruction
	case "form":
		return TypeForm
	default:
		return Type(s)
	}
}

// Status is a document's lifecycle status.
type Status string

const (
	StatusActive  Status = "Active"
	StatusRenewed Status = "Active (Renewed)"
	StatusRetired Status = "Retired"
)

// Document is one controlled document. A zero ExpiryDate means the source
// date was missing or unparseable; such documents are never selected for
// renewal.
type Document struct {
	DocID      string    `json:"doc_id"`
	Title      string    `json:"title"`
	Type       Type      `json:"type"`
	Status     Status    `json:"status"`
	OwnerEmail string    `json:"owner_email"`
	ExpiryDate time.Time `json:"expiry_date"`
	ReviewDate time.Time `json:"review_date"`
}
