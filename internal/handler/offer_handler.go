package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/logic"
	"github.com/blues/sps/internal/notify"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OfferHandler struct {
	offerLogic *logic.OfferLogic
}

func NewOfferHandler(db *gorm.DB, clk clock.Clock, notifier notify.Notifier) *OfferHandler {
	return &OfferHandler{
		offerLogic: logic.NewOfferLogic(db, clk, notifier),
	}
}

// SubmitOfferRequest is the submission payload.
type SubmitOfferRequest struct {
	Price   decimal.Decimal `json:"price"`
	Remarks string          `json:"remarks"`
}

// SubmitOffer submits an offer on the proposition in the path.
func (h *OfferHandler) SubmitOffer(c *gin.Context) {
	var req SubmitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	offer, err := h.offerLogic.SubmitOffer(CurrentActor(c), c.Param("slug"), logic.SubmitOfferInput{
		Price:   req.Price,
		Remarks: req.Remarks,
	})
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "offer submitted", ToOfferResponse(offer))
}

// AcceptOffer accepts a pending offer.
func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}

	offer, err := h.offerLogic.Accept(CurrentActor(c), id)
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "offer accepted", ToOfferResponse(offer))
}

// RejectOffer rejects a pending offer.
func (h *OfferHandler) RejectOffer(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}

	offer, err := h.offerLogic.Reject(CurrentActor(c), id)
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "offer rejected", ToOfferResponse(offer))
}

// MarkOfferPaid records the collection of an accepted offer.
func (h *OfferHandler) MarkOfferPaid(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}

	offer, err := h.offerLogic.MarkPaid(CurrentActor(c), id)
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "offer marked paid", ToOfferResponse(offer))
}

// GetOffer returns one offer, for the proposition's responsible and staff.
func (h *OfferHandler) GetOffer(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}

	offer, err := h.offerLogic.GetOffer(CurrentActor(c), id)
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToOfferResponse(offer))
}

// ListMyOffers lists the current actor's offers.
func (h *OfferHandler) ListMyOffers(c *gin.Context) {
	offers, err := h.offerLogic.ListOffersForUser(CurrentActor(c))
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToOfferResponseList(offers))
}

func offerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid offer id")
		return 0, false
	}
	return id, true
}
