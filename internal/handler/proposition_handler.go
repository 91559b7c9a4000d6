package handler

import (
	"net/http"

	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/logic"
	"github.com/blues/sps/internal/policy"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PropositionHandler struct {
	propositionLogic *logic.PropositionLogic
	statsLogic       *logic.StatsLogic
	clock            clock.Clock
}

func NewPropositionHandler(db *gorm.DB, clk clock.Clock) *PropositionHandler {
	return &PropositionHandler{
		propositionLogic: logic.NewPropositionLogic(db),
		statsLogic:       logic.NewStatsLogic(db),
		clock:            clk,
	}
}

// CreatePropositionRequest is the creation payload.
type CreatePropositionRequest struct {
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	MaxBeneficiaries int             `json:"max_beneficiaries"`
	ImageURL         string          `json:"image_url"`
}

// CreateProposition publishes a proposition on the pot in the path.
func (h *PropositionHandler) CreateProposition(c *gin.Context) {
	var req CreatePropositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	prop, err := h.propositionLogic.CreateProposition(CurrentActor(c), c.Param("slug"), logic.CreatePropositionInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		MaxBeneficiaries: req.MaxBeneficiaries,
		ImageURL:         req.ImageURL,
	})
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "proposition created", ToPropositionResponse(prop))
}

// GetProposition returns a proposition with its derived counters and
// whether it currently accepts offers.
func (h *PropositionHandler) GetProposition(c *gin.Context) {
	prop, pot, err := h.propositionLogic.GetProposition(c.Param("slug"))
	if err != nil {
		DomainError(c, err)
		return
	}

	total, accepted, paid, err := h.statsLogic.OfferCounts(prop.Id)
	if err != nil {
		DomainError(c, err)
		return
	}

	detail := PropositionDetailResponse{
		PropositionResponse: ToPropositionResponse(prop),
		Offerable:           policy.IsOfferable(prop, pot, accepted, h.clock.Today()),
		OffersTotal:         total,
		OffersAccepted:      accepted,
		OffersPaid:          paid,
	}

	SuccessResponse(c, http.StatusOK, "", detail)
}

// ListMyPropositions lists the current actor's propositions.
func (h *PropositionHandler) ListMyPropositions(c *gin.Context) {
	props, err := h.propositionLogic.ListPropositionsForUser(CurrentActor(c))
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToPropositionResponseList(props))
}

// DeleteProposition deletes a proposition without offers.
func (h *PropositionHandler) DeleteProposition(c *gin.Context) {
	if err := h.propositionLogic.DeleteProposition(CurrentActor(c), c.Param("slug")); err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "proposition deleted", nil)
}
