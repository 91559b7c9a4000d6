package logic

import (
	"errors"
	"time"

	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/errs"
	"github.com/blues/sps/internal/model"
	"github.com/blues/sps/internal/policy"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PotLogic implements pot commands and queries.
type PotLogic struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewPotLogic creates pot business logic.
func NewPotLogic(db *gorm.DB, clk clock.Clock) *PotLogic {
	return &PotLogic{db: db, clock: clk}
}

// CreatePotInput is the payload for CreatePot.
type CreatePotInput struct {
	Name             string
	Objective        string
	TargetAmount     decimal.Decimal
	DepositDeadline  time.Time
	PurchaseDeadline time.Time
	ImageURL         string
}

// CreatePot validates and persists a new pot owned by actor.
func (p *PotLogic) CreatePot(actor model.Actor, in CreatePotInput) (*model.Pot, error) {
	if !policy.Can(actor, policy.ActionCreatePot, policy.Target{}) {
		return nil, errs.Forbidden("authentication required")
	}

	if err := p.validatePot(in); err != nil {
		return nil, err
	}

	potSlug := slug.Make(in.Name)
	var count int64
	if err := p.db.Model(&model.Pot{}).
		Where("name = ? OR slug = ?", in.Name, potSlug).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errs.Validation("a pot named %q already exists", in.Name)
	}

	pot := &model.Pot{
		Name:             in.Name,
		Slug:             potSlug,
		ResponsibleID:    actor.ID,
		ResponsibleName:  actor.Name,
		ResponsibleEmail: actor.Email,
		Objective:        in.Objective,
		TargetAmount:     in.TargetAmount,
		DepositDeadline:  clock.Truncate(in.DepositDeadline),
		PurchaseDeadline: clock.Truncate(in.PurchaseDeadline),
		ImageURL:         in.ImageURL,
	}

	if err := p.db.Create(pot).Error; err != nil {
		return nil, err
	}

	return pot, nil
}

// GetPots lists all pots, newest first.
func (p *PotLogic) GetPots() ([]model.Pot, error) {
	var pots []model.Pot
	if err := p.db.Order("created_at DESC").Find(&pots).Error; err != nil {
		return nil, err
	}
	return pots, nil
}

// GetPot fetches a pot by slug.
func (p *PotLogic) GetPot(potSlug string) (*model.Pot, error) {
	var pot model.Pot
	if err := p.db.Where("slug = ?", potSlug).First(&pot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("pot %s not found", potSlug)
		}
		return nil, err
	}
	return &pot, nil
}

// DeletePot removes a pot. Pots still referenced by propositions or
// requests are protected.
func (p *PotLogic) DeletePot(actor model.Actor, potSlug string) error {
	pot, err := p.GetPot(potSlug)
	if err != nil {
		return err
	}

	if !policy.Can(actor, policy.ActionDeletePot, policy.Target{PotResponsibleID: pot.ResponsibleID}) {
		if actor.Anonymous() {
			return errs.Forbidden("authentication required")
		}
		return errs.Forbidden("only the pot's responsible may delete it")
	}

	var propositions int64
	if err := p.db.Model(&model.Proposition{}).Where("pot_id = ?", pot.Id).Count(&propositions).Error; err != nil {
		return err
	}
	var requests int64
	if err := p.db.Model(&model.Request{}).Where("pot_id = ?", pot.Id).Count(&requests).Error; err != nil {
		return err
	}
	if propositions > 0 || requests > 0 {
		return errs.Conflict("pot %s still has propositions or requests", potSlug)
	}

	return p.db.Delete(pot).Error
}

// validatePot checks pot creation input.
func (p *PotLogic) validatePot(in CreatePotInput) error {
	if in.Name == "" {
		return errs.Validation("pot name must not be empty")
	}
	if in.TargetAmount.IsNegative() {
		return errs.Validation("target amount %s is not positive", in.TargetAmount)
	}
	if in.DepositDeadline.IsZero() || in.PurchaseDeadline.IsZero() {
		return errs.Validation("both deadlines are required")
	}

	today := p.clock.Today()
	deposit := clock.Truncate(in.DepositDeadline)
	purchase := clock.Truncate(in.PurchaseDeadline)
	if deposit.Before(today) {
		return errs.Validation("deposit deadline %s is already past", deposit.Format("2006-01-02"))
	}
	if purchase.Before(today) {
		return errs.Validation("purchase deadline %s is already past", purchase.Format("2006-01-02"))
	}
	if purchase.Before(deposit) {
		return errs.Validation("the deposit deadline must precede the purchase deadline")
	}
	return nil
}
