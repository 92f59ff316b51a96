package aggregate

import (
	"strings"

	"golang.org/x/text/cases"

	"donorboard/internal/domain"
)

// Identity is the composite donor key used to recognise repeat donors. Missing fields
// are kept as explicit "absent" markers so two rows that both lack a field still match.
type Identity struct {
	HasDonorID bool
	DonorID    int64
	HasPhone   bool
	Phone      string
	HasName    bool
	Name       string
}

// IdentityOf builds the composite key of a donation. Names are trimmed and case-folded;
// a blank name counts as absent.
func IdentityOf(d domain.Donation) Identity {
	var id Identity
	if d.DonorID != nil {
		id.HasDonorID = true
		id.DonorID = *d.DonorID
	}
	if d.DonorPhone != nil {
		id.HasPhone = true
		id.Phone = *d.DonorPhone
	}
	if d.DonorName != nil {
		if name := strings.TrimSpace(*d.DonorName); name != "" {
			id.HasName = true
			id.Name = cases.Fold().String(name)
		}
	}
	return id
}
