package handler

import (
	"net/http"
	"time"

	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PotHandler struct {
	potLogic   *logic.PotLogic
	statsLogic *logic.StatsLogic
}

func NewPotHandler(db *gorm.DB, clk clock.Clock) *PotHandler {
	return &PotHandler{
		potLogic:   logic.NewPotLogic(db, clk),
		statsLogic: logic.NewStatsLogic(db),
	}
}

// CreatePotRequest is the creation payload.
type CreatePotRequest struct {
	Name             string          `json:"name" binding:"required"`
	Objective        string          `json:"objective"`
	TargetAmount     decimal.Decimal `json:"target_amount"`
	DepositDeadline  string          `json:"deposit_deadline" binding:"required"`
	PurchaseDeadline string          `json:"purchase_deadline" binding:"required"`
	ImageURL         string          `json:"image_url"`
}

// CreatePot creates a pot owned by the current actor.
func (h *PotHandler) CreatePot(c *gin.Context) {
	var req CreatePotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	deposit, err := time.Parse("2006-01-02", req.DepositDeadline)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid deposit_deadline, want YYYY-MM-DD")
		return
	}
	purchase, err := time.Parse("2006-01-02", req.PurchaseDeadline)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid purchase_deadline, want YYYY-MM-DD")
		return
	}

	pot, err := h.potLogic.CreatePot(CurrentActor(c), logic.CreatePotInput{
		Name:             req.Name,
		Objective:        req.Objective,
		TargetAmount:     req.TargetAmount,
		DepositDeadline:  deposit,
		PurchaseDeadline: purchase,
		ImageURL:         req.ImageURL,
	})
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "pot created", ToPotResponse(pot))
}

// GetPots lists all pots.
func (h *PotHandler) GetPots(c *gin.Context) {
	pots, err := h.potLogic.GetPots()
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToPotResponseList(pots))
}

// GetPot returns one pot by slug.
func (h *PotHandler) GetPot(c *gin.Context) {
	pot, err := h.potLogic.GetPot(c.Param("slug"))
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToPotResponse(pot))
}

// GetPotStats returns the pot's aggregates: validated and collected sums
// and the progress percentage.
func (h *PotHandler) GetPotStats(c *gin.Context) {
	pot, err := h.potLogic.GetPot(c.Param("slug"))
	if err != nil {
		DomainError(c, err)
		return
	}

	stats, err := h.statsLogic.PotStats(pot)
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", stats)
}

// DeletePot deletes an empty pot.
func (h *PotHandler) DeletePot(c *gin.Context) {
	if err := h.potLogic.DeletePot(CurrentActor(c), c.Param("slug")); err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "pot deleted", nil)
}
