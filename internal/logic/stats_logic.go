package logic

import (
	"github.com/blues/sps/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsLogic computes the read-only aggregates over offers. Every call hits
// the database, so a percentage can never lag behind a concurrent
// transition.
type StatsLogic struct {
	db *gorm.DB
}

// NewStatsLogic creates aggregation logic.
func NewStatsLogic(db *gorm.DB) *StatsLogic {
	return &StatsLogic{db: db}
}

// SumValidated sums the prices of the accepted offers under the pot.
func (s *StatsLogic) SumValidated(potID int64) (decimal.Decimal, error) {
	return s.sumOffers(potID, false)
}

// SumCollected sums the prices of the accepted and paid offers under the pot.
func (s *StatsLogic) SumCollected(potID int64) (decimal.Decimal, error) {
	return s.sumOffers(potID, true)
}

func (s *StatsLogic) sumOffers(potID int64, paidOnly bool) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}

	q := s.db.Model(&model.Offer{}).
		Select("COALESCE(SUM(offer.price), 0) AS total").
		Joins("JOIN proposition ON proposition.id = offer.proposition_id").
		Where("proposition.pot_id = ? AND offer.status = ?", potID, model.OfferAccepted)
	if paidOnly {
		q = q.Where("offer.paid = ?", true)
	}

	if err := q.Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// Progress returns the pot's advancement toward its target, in rounded
// percent. A zero target yields 0 rather than a division fault.
func (s *StatsLogic) Progress(pot *model.Pot) (int, error) {
	if pot.TargetAmount.IsZero() {
		return 0, nil
	}

	sum, err := s.SumValidated(pot.Id)
	if err != nil {
		return 0, err
	}

	percent := sum.Mul(decimal.NewFromInt(100)).Div(pot.TargetAmount).Round(0)
	return int(percent.IntPart()), nil
}

// OfferCounts returns the total, accepted and paid offer counts for a
// proposition.
func (s *StatsLogic) OfferCounts(propositionID int64) (total, accepted, paid int64, err error) {
	base := func() *gorm.DB {
		return s.db.Model(&model.Offer{}).Where("proposition_id = ?", propositionID)
	}

	if err = base().Count(&total).Error; err != nil {
		return
	}
	if err = base().Where("status = ?", model.OfferAccepted).Count(&accepted).Error; err != nil {
		return
	}
	if err = base().Where("paid = ?", true).Count(&paid).Error; err != nil {
		return
	}
	return
}

// AcceptedCount returns how many accepted offers a proposition has; this is
// the number that consumes the beneficiary cap.
func (s *StatsLogic) AcceptedCount(propositionID int64) (int64, error) {
	var count int64
	err := s.db.Model(&model.Offer{}).
		Where("proposition_id = ? AND status = ?", propositionID, model.OfferAccepted).
		Count(&count).Error
	return count, err
}

// PotStats assembles the aggregate view of a pot.
func (s *StatsLogic) PotStats(pot *model.Pot) (map[string]interface{}, error) {
	sumValidated, err := s.SumValidated(pot.Id)
	if err != nil {
		return nil, err
	}
	sumCollected, err := s.SumCollected(pot.Id)
	if err != nil {
		return nil, err
	}
	progress, err := s.Progress(pot)
	if err != nil {
		return nil, err
	}

	var propositions int64
	if err := s.db.Model(&model.Proposition{}).Where("pot_id = ?", pot.Id).Count(&propositions).Error; err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"pot_id":        pot.Id,
		"target_amount": pot.TargetAmount,
		"sum_validated": sumValidated,
		"sum_collected": sumCollected,
		"progress":      progress,
		"propositions":  propositions,
	}, nil
}
