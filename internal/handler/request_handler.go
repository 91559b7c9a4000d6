package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/sps/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RequestHandler struct {
	requestLogic *logic.RequestLogic
}

func NewRequestHandler(db *gorm.DB) *RequestHandler {
	return &RequestHandler{
		requestLogic: logic.NewRequestLogic(db),
	}
}

// CreateRequestRequest is the creation payload.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// CreateRequest records a wish against the pot in the path.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.requestLogic.CreateRequest(CurrentActor(c), c.Param("slug"), req.Description)
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "request created", ToRequestResponse(request))
}

// ListPotRequests lists the requests against the pot in the path.
func (h *RequestHandler) ListPotRequests(c *gin.Context) {
	requests, err := h.requestLogic.ListRequestsForPot(c.Param("slug"))
	if err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToRequestResponseList(requests))
}

// DeleteRequest deletes a request.
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := h.requestLogic.DeleteRequest(CurrentActor(c), id); err != nil {
		DomainError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "request deleted", nil)
}
