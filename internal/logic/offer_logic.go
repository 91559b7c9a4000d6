package logic

import (
	"errors"

	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/errs"
	"github.com/blues/sps/internal/logger"
	"github.com/blues/sps/internal/model"
	"github.com/blues/sps/internal/notify"
	"github.com/blues/sps/internal/policy"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OfferLogic implements the offer lifecycle: submit, accept, reject,
// mark paid. Notifications are best-effort; a failed delivery never fails
// the transition.
type OfferLogic struct {
	db       *gorm.DB
	clock    clock.Clock
	notifier notify.Notifier
}

// NewOfferLogic creates offer business logic.
func NewOfferLogic(db *gorm.DB, clk clock.Clock, notifier notify.Notifier) *OfferLogic {
	return &OfferLogic{db: db, clock: clk, notifier: notifier}
}

// SubmitOfferInput is the payload for SubmitOffer.
type SubmitOfferInput struct {
	Price   decimal.Decimal
	Remarks string
}

// SubmitOffer creates a pending offer by actor on the proposition. The
// price floor and the availability rules are checked inside one transaction
// holding the proposition row, so two concurrent submissions cannot jointly
// overshoot the beneficiary cap.
func (o *OfferLogic) SubmitOffer(actor model.Actor, propSlug string, in SubmitOfferInput) (*model.Offer, error) {
	if !policy.Can(actor, policy.ActionSubmitOffer, policy.Target{}) {
		return nil, errs.Forbidden("authentication required")
	}
	if in.Price.IsNegative() {
		return nil, errs.Validation("price %s is not positive", in.Price)
	}

	var offer *model.Offer
	var prop model.Proposition
	err := o.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("slug = ?", propSlug).First(&prop).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("proposition %s not found", propSlug)
			}
			return err
		}

		var pot model.Pot
		if err := tx.First(&pot, prop.PotID).Error; err != nil {
			return err
		}

		if in.Price.LessThan(prop.Price) {
			return errs.Validation("your price (%s) cannot be below the asking price (%s)", in.Price, prop.Price)
		}

		var accepted int64
		if err := tx.Model(&model.Offer{}).
			Where("proposition_id = ? AND status = ?", prop.Id, model.OfferAccepted).
			Count(&accepted).Error; err != nil {
			return err
		}

		if !policy.IsOfferable(&prop, &pot, accepted, o.clock.Today()) {
			return errs.Conflict("proposition %s is no longer offerable", propSlug)
		}

		offer = &model.Offer{
			PropositionID:    prop.Id,
			BeneficiaryID:    actor.ID,
			BeneficiaryName:  actor.Name,
			BeneficiaryEmail: actor.Email,
			Status:           model.OfferPending,
			Remarks:          in.Remarks,
			Price:            in.Price,
		}
		return tx.Create(offer).Error
	})
	if err != nil {
		return nil, err
	}

	o.send(notify.Recipient{Name: prop.ResponsibleName, Email: prop.ResponsibleEmail},
		notify.TemplateOfferCreated, notify.Context{
			"beneficiary": actor.Name,
			"proposition": prop.Name,
			"price":       in.Price.String(),
		})

	return offer, nil
}

// Accept marks a pending offer accepted and notifies the beneficiary.
func (o *OfferLogic) Accept(actor model.Actor, offerID int64) (*model.Offer, error) {
	return o.decide(actor, offerID, model.OfferAccepted, notify.TemplateOfferAccepted)
}

// Reject marks a pending offer rejected and notifies the beneficiary.
func (o *OfferLogic) Reject(actor model.Actor, offerID int64) (*model.Offer, error) {
	return o.decide(actor, offerID, model.OfferRejected, notify.TemplateOfferRejected)
}

// decide performs the pending -> accepted/rejected transition.
func (o *OfferLogic) decide(actor model.Actor, offerID int64, status model.OfferStatus, templateKey string) (*model.Offer, error) {
	offer, prop, _, err := o.load(offerID)
	if err != nil {
		return nil, err
	}

	if !policy.Can(actor, policy.ActionDecideOffer, policy.Target{PropositionResponsibleID: prop.ResponsibleID}) {
		if actor.Anonymous() {
			return nil, errs.Forbidden("authentication required")
		}
		return nil, errs.Forbidden("only the proposition's responsible may decide this offer")
	}

	// The pending guard rides in the UPDATE itself: a concurrent decide
	// that read the same pending snapshot matches zero rows here, so at
	// most one decision lands and only that one notifies.
	res := o.db.Model(offer).Where("status = ?", model.OfferPending).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.InvalidTransition("offer %d is already decided", offer.Id)
	}
	offer.Status = status

	o.send(notify.Recipient{Name: offer.BeneficiaryName, Email: offer.BeneficiaryEmail},
		templateKey, notify.Context{
			"proposition": prop.Name,
			"responsible": prop.ResponsibleName,
			"price":       offer.Price.String(),
		})

	return offer, nil
}

// MarkPaid records that an accepted offer has been collected by the pot's
// responsible. No notification is sent.
func (o *OfferLogic) MarkPaid(actor model.Actor, offerID int64) (*model.Offer, error) {
	offer, _, pot, err := o.load(offerID)
	if err != nil {
		return nil, err
	}

	if !policy.Can(actor, policy.ActionMarkOfferPaid, policy.Target{
		PotResponsibleID: pot.ResponsibleID,
		OfferAccepted:    offer.Status == model.OfferAccepted,
	}) {
		if actor.Anonymous() {
			return nil, errs.Forbidden("authentication required")
		}
		return nil, errs.Forbidden("only the pot's responsible may mark an accepted offer as paid")
	}

	// Same conditional write as decide: paid flips false to true at most
	// once, racing collectors included.
	res := o.db.Model(offer).Where("paid = ?", false).Update("paid", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.InvalidTransition("offer %d is already paid", offer.Id)
	}
	offer.Paid = true

	return offer, nil
}

// GetOffer fetches an offer; only the proposition's responsible and staff
// may see it.
func (o *OfferLogic) GetOffer(actor model.Actor, offerID int64) (*model.Offer, error) {
	offer, prop, _, err := o.load(offerID)
	if err != nil {
		return nil, err
	}

	if !policy.Can(actor, policy.ActionViewOffer, policy.Target{PropositionResponsibleID: prop.ResponsibleID}) {
		if actor.Anonymous() {
			return nil, errs.Forbidden("authentication required")
		}
		return nil, errs.Forbidden("only the proposition's responsible may view this offer")
	}

	return offer, nil
}

// ListOffersForUser lists the actor's own offers, ordered by paid, status,
// then proposition.
func (o *OfferLogic) ListOffersForUser(actor model.Actor) ([]model.Offer, error) {
	if actor.Anonymous() {
		return nil, errs.Forbidden("authentication required")
	}

	var offers []model.Offer
	if err := o.db.Where("beneficiary_id = ?", actor.ID).
		Order("paid, status, proposition_id").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// load fetches an offer with its proposition and pot.
func (o *OfferLogic) load(offerID int64) (*model.Offer, *model.Proposition, *model.Pot, error) {
	var offer model.Offer
	if err := o.db.First(&offer, offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, errs.NotFound("offer %d not found", offerID)
		}
		return nil, nil, nil, err
	}

	var prop model.Proposition
	if err := o.db.First(&prop, offer.PropositionID).Error; err != nil {
		return nil, nil, nil, err
	}

	var pot model.Pot
	if err := o.db.First(&pot, prop.PotID).Error; err != nil {
		return nil, nil, nil, err
	}

	return &offer, &prop, &pot, nil
}

// send delivers a notification, logging failures instead of propagating
// them; a lost mail must never undo a transition.
func (o *OfferLogic) send(rcpt notify.Recipient, templateKey string, ctx notify.Context) {
	if err := o.notifier.Notify(rcpt, templateKey, ctx); err != nil {
		logger.Error("notification %s to %s failed: %v", templateKey, rcpt.Email, err)
	}
}

// lockForUpdate adds a row lock on backends that support it. sqlite has no
// FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
