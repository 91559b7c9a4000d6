package logic

import (
	"errors"

	"github.com/blues/sps/internal/errs"
	"github.com/blues/sps/internal/model"
	"github.com/blues/sps/internal/policy"
	"gorm.io/gorm"
)

// RequestLogic implements the request ("wish") commands, independent of the
// offer lifecycle.
type RequestLogic struct {
	db *gorm.DB
}

// NewRequestLogic creates request business logic.
func NewRequestLogic(db *gorm.DB) *RequestLogic {
	return &RequestLogic{db: db}
}

// CreateRequest records a wish by actor against the pot.
func (r *RequestLogic) CreateRequest(actor model.Actor, potSlug, description string) (*model.Request, error) {
	if !policy.Can(actor, policy.ActionCreateRequest, policy.Target{}) {
		return nil, errs.Forbidden("authentication required")
	}
	if description == "" {
		return nil, errs.Validation("request description must not be empty")
	}
	if len(description) > 250 {
		return nil, errs.Validation("request description is limited to 250 characters")
	}

	var pot model.Pot
	if err := r.db.Where("slug = ?", potSlug).First(&pot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("pot %s not found", potSlug)
		}
		return nil, err
	}

	request := &model.Request{
		PotID:         pot.Id,
		RequesterID:   actor.ID,
		RequesterName: actor.Name,
		Description:   description,
	}
	if err := r.db.Create(request).Error; err != nil {
		return nil, err
	}

	return request, nil
}

// DeleteRequest removes a request; only its requester and staff may.
func (r *RequestLogic) DeleteRequest(actor model.Actor, requestID int64) error {
	var request model.Request
	if err := r.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("request %d not found", requestID)
		}
		return err
	}

	if !policy.Can(actor, policy.ActionDeleteRequest, policy.Target{RequesterID: request.RequesterID}) {
		if actor.Anonymous() {
			return errs.Forbidden("authentication required")
		}
		return errs.Forbidden("only the requester may delete this request")
	}

	return r.db.Delete(&request).Error
}

// ListRequestsForPot lists the requests expressed against a pot.
func (r *RequestLogic) ListRequestsForPot(potSlug string) ([]model.Request, error) {
	var pot model.Pot
	if err := r.db.Where("slug = ?", potSlug).First(&pot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("pot %s not found", potSlug)
		}
		return nil, err
	}

	var requests []model.Request
	if err := r.db.Where("pot_id = ?", pot.Id).Order("created_at").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
