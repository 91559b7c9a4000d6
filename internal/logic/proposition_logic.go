package logic

import (
	"errors"

	"github.com/blues/sps/internal/errs"
	"github.com/blues/sps/internal/model"
	"github.com/blues/sps/internal/policy"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PropositionLogic implements proposition commands and queries.
type PropositionLogic struct {
	db *gorm.DB
}

// NewPropositionLogic creates proposition business logic.
func NewPropositionLogic(db *gorm.DB) *PropositionLogic {
	return &PropositionLogic{db: db}
}

// CreatePropositionInput is the payload for CreateProposition.
type CreatePropositionInput struct {
	Name             string
	Description      string
	Price            decimal.Decimal
	MaxBeneficiaries int
	ImageURL         string
}

// CreateProposition validates and persists a new proposition on the pot,
// owned by actor.
func (p *PropositionLogic) CreateProposition(actor model.Actor, potSlug string, in CreatePropositionInput) (*model.Proposition, error) {
	if !policy.Can(actor, policy.ActionCreateProposition, policy.Target{}) {
		return nil, errs.Forbidden("authentication required")
	}

	var pot model.Pot
	if err := p.db.Where("slug = ?", potSlug).First(&pot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("pot %s not found", potSlug)
		}
		return nil, err
	}

	if err := validateProposition(in); err != nil {
		return nil, err
	}

	propSlug := slug.Make(in.Name)
	var count int64
	if err := p.db.Model(&model.Proposition{}).
		Where("name = ? OR slug = ?", in.Name, propSlug).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errs.Validation("a proposition named %q already exists", in.Name)
	}

	prop := &model.Proposition{
		Name:             in.Name,
		Slug:             propSlug,
		PotID:            pot.Id,
		ResponsibleID:    actor.ID,
		ResponsibleName:  actor.Name,
		ResponsibleEmail: actor.Email,
		Description:      in.Description,
		Price:            in.Price,
		MaxBeneficiaries: in.MaxBeneficiaries,
		ImageURL:         in.ImageURL,
	}

	if err := p.db.Create(prop).Error; err != nil {
		return nil, err
	}

	return prop, nil
}

// GetProposition fetches a proposition and its pot by slug.
func (p *PropositionLogic) GetProposition(propSlug string) (*model.Proposition, *model.Pot, error) {
	var prop model.Proposition
	if err := p.db.Where("slug = ?", propSlug).First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errs.NotFound("proposition %s not found", propSlug)
		}
		return nil, nil, err
	}

	var pot model.Pot
	if err := p.db.First(&pot, prop.PotID).Error; err != nil {
		return nil, nil, err
	}

	return &prop, &pot, nil
}

// ListPropositionsForUser lists the actor's own propositions, ordered by
// pot then price.
func (p *PropositionLogic) ListPropositionsForUser(actor model.Actor) ([]model.Proposition, error) {
	if actor.Anonymous() {
		return nil, errs.Forbidden("authentication required")
	}

	var props []model.Proposition
	if err := p.db.Where("responsible_id = ?", actor.ID).
		Order("pot_id, price").
		Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

// DeleteProposition removes a proposition. Propositions still referenced by
// offers are protected.
func (p *PropositionLogic) DeleteProposition(actor model.Actor, propSlug string) error {
	prop, _, err := p.GetProposition(propSlug)
	if err != nil {
		return err
	}

	if !policy.Can(actor, policy.ActionDeleteProposition, policy.Target{PropositionResponsibleID: prop.ResponsibleID}) {
		if actor.Anonymous() {
			return errs.Forbidden("authentication required")
		}
		return errs.Forbidden("only the proposition's responsible may delete it")
	}

	var offers int64
	if err := p.db.Model(&model.Offer{}).Where("proposition_id = ?", prop.Id).Count(&offers).Error; err != nil {
		return err
	}
	if offers > 0 {
		return errs.Conflict("proposition %s still has offers", propSlug)
	}

	return p.db.Delete(prop).Error
}

// validateProposition checks proposition creation input.
func validateProposition(in CreatePropositionInput) error {
	if in.Name == "" {
		return errs.Validation("proposition name must not be empty")
	}
	if in.Price.IsNegative() {
		return errs.Validation("price %s is not positive", in.Price)
	}
	if in.MaxBeneficiaries < 0 {
		return errs.Validation("max beneficiaries %d is not positive", in.MaxBeneficiaries)
	}
	return nil
}
