package policy

import (
	"time"

	"github.com/blues/sps/internal/model"
)

// IsOfferable reports whether prop currently accepts new offers.
// acceptedCount is the number of accepted offers on prop; pending and
// rejected offers never consume capacity. The caller must evaluate this
// against a consistent snapshot when creating an offer.
func IsOfferable(prop *model.Proposition, pot *model.Pot, acceptedCount int64, today time.Time) bool {
	if today.After(pot.PurchaseDeadline) {
		return false
	}
	if prop.Unlimited() {
		return true
	}
	return acceptedCount < int64(prop.MaxBeneficiaries)
}
