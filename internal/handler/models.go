package handler

import (
	"time"

	"github.com/blues/sps/internal/model"
	"github.com/shopspring/decimal"
)

// Response is the common envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Pot responses

// PotResponse is the wire form of a pot.
type PotResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Responsible      string          `json:"responsible"`
	Objective        string          `json:"objective"`
	TargetAmount     decimal.Decimal `json:"targetAmount"`
	DepositDeadline  string          `json:"depositDeadline"`
	PurchaseDeadline string          `json:"purchaseDeadline"`
	ImageURL         string          `json:"imageUrl"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// PropositionResponse is the wire form of a proposition.
type PropositionResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	PotID            int64           `json:"potId"`
	Responsible      string          `json:"responsible"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	MaxBeneficiaries int             `json:"maxBeneficiaries"`
	ImageURL         string          `json:"imageUrl"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// PropositionDetailResponse adds the derived fields a detail page shows.
type PropositionDetailResponse struct {
	PropositionResponse
	Offerable      bool  `json:"offerable"`
	OffersTotal    int64 `json:"offersTotal"`
	OffersAccepted int64 `json:"offersAccepted"`
	OffersPaid     int64 `json:"offersPaid"`
}

// OfferResponse is the wire form of an offer.
type OfferResponse struct {
	ID            int64           `json:"id"`
	PropositionID int64           `json:"propositionId"`
	Beneficiary   string          `json:"beneficiary"`
	Status        string          `json:"status"`
	Paid          bool            `json:"paid"`
	Remarks       string          `json:"remarks"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RequestResponse is the wire form of a request.
type RequestResponse struct {
	ID          int64     `json:"id"`
	PotID       int64     `json:"potId"`
	Requester   string    `json:"requester"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Converters

// ToPotResponse converts a database model to its wire form.
func ToPotResponse(pot *model.Pot) PotResponse {
	return PotResponse{
		ID:               pot.Id,
		Name:             pot.Name,
		Slug:             pot.Slug,
		Responsible:      pot.ResponsibleName,
		Objective:        pot.Objective,
		TargetAmount:     pot.TargetAmount,
		DepositDeadline:  pot.DepositDeadline.Format("2006-01-02"),
		PurchaseDeadline: pot.PurchaseDeadline.Format("2006-01-02"),
		ImageURL:         pot.ImageURL,
		CreatedAt:        pot.CreatedAt,
		UpdatedAt:        pot.UpdatedAt,
	}
}

// ToPotResponseList converts a list of pots.
func ToPotResponseList(pots []model.Pot) []PotResponse {
	result := make([]PotResponse, len(pots))
	for i, pot := range pots {
		result[i] = ToPotResponse(&pot)
	}
	return result
}

// ToPropositionResponse converts a database model to its wire form.
func ToPropositionResponse(prop *model.Proposition) PropositionResponse {
	return PropositionResponse{
		ID:               prop.Id,
		Name:             prop.Name,
		Slug:             prop.Slug,
		PotID:            prop.PotID,
		Responsible:      prop.ResponsibleName,
		Description:      prop.Description,
		Price:            prop.Price,
		MaxBeneficiaries: prop.MaxBeneficiaries,
		ImageURL:         prop.ImageURL,
		CreatedAt:        prop.CreatedAt,
	}
}

// ToPropositionResponseList converts a list of propositions.
func ToPropositionResponseList(props []model.Proposition) []PropositionResponse {
	result := make([]PropositionResponse, len(props))
	for i, prop := range props {
		result[i] = ToPropositionResponse(&prop)
	}
	return result
}

// ToOfferResponse converts a database model to its wire form.
func ToOfferResponse(offer *model.Offer) OfferResponse {
	return OfferResponse{
		ID:            offer.Id,
		PropositionID: offer.PropositionID,
		Beneficiary:   offer.BeneficiaryName,
		Status:        string(offer.Status),
		Paid:          offer.Paid,
		Remarks:       offer.Remarks,
		Price:         offer.Price,
		CreatedAt:     offer.CreatedAt,
	}
}

// ToOfferResponseList converts a list of offers.
func ToOfferResponseList(offers []model.Offer) []OfferResponse {
	result := make([]OfferResponse, len(offers))
	for i, offer := range offers {
		result[i] = ToOfferResponse(&offer)
	}
	return result
}

// ToRequestResponse converts a database model to its wire form.
func ToRequestResponse(request *model.Request) RequestResponse {
	return RequestResponse{
		ID:          request.Id,
		PotID:       request.PotID,
		Requester:   request.RequesterName,
		Description: request.Description,
		CreatedAt:   request.CreatedAt,
	}
}

// ToRequestResponseList converts a list of requests.
func ToRequestResponseList(requests []model.Request) []RequestResponse {
	result := make([]RequestResponse, len(requests))
	for i, request := range requests {
		result[i] = ToRequestResponse(&request)
	}
	return result
}
