// Package staff holds the staff roster and its lookup rules.
package staff

import "fmt"

// Record is one roster entry. ApprovalRole is empty when the person holds
// no approval role.
type Record struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Department   string `json:"department"`
	ApprovalRole string `json:"approval_role"`
}

// Listing renders the record as one roster line for advisor prompts.
func (r Record) Listing() string {
	return fmt.Sprintf("%s (%s), Email: %s", r.Name, r.Position, r.Email)
}
