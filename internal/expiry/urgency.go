package expiry

import "github.com/JaimeStill/docket/internal/documents"

// Urgency is the renewal urgency of a candidate.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// ChiefOfMedicalStaff is the owner position whose documents are always High.
const ChiefOfMedicalStaff = "Chief of Medical Staff"

func (u Urgency) rank() int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	default:
		return 0
	}
}

// Hint returns the urgency the renewal guidelines suggest for a document:
// High for policies, already-expired documents, and documents owned by the
// Chief of Medical Staff; Medium for work instructions; Low otherwise.
func Hint(docType documents.Type, ownerPosition string, daysUntilExpiry int) Urgency {
	switch {
	case docType == documents.TypePolicy,
		daysUntilExpiry < 0,
		ownerPosition == ChiefOfMedicalStaff:
		return UrgencyHigh
	case docType == documents.TypeWorkInstruction:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// Raise returns the higher of u and floor.
func Raise(u, floor Urgency) Urgency {
	if floor.rank() > u.rank() {
		return floor
	}
	return u
}
