package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avetkin/scooter-rental/internal/dto"
	"github.com/avetkin/scooter-rental/internal/service"
)

// PaymentHandler handles settlement history and wallet requests
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List returns the caller's payments
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	payments, err := h.paymentService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// AddBalance tops up the caller's wallet
func (h *PaymentHandler) AddBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	var req dto.AddBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.paymentService.AddBalance(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
