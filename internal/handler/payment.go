package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/babo072/my-shopping-mall/internal/middleware"
	"github.com/babo072/my-shopping-mall/internal/model"
	"github.com/babo072/my-shopping-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes POST /payment/verify. Every response carries a
// success flag; gateway rejections forward the provider's own status code
// and error payload verbatim.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler creates a payment handler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Verify confirms a payment and finalizes the order.
func (h *PaymentHandler) Verify(c *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "login is required"})
		return
	}

	var req model.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.payments.Verify(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		h.respondVerifyError(c, err)
		return
	}

	if result.AlreadyProcessed {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order has already been processed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": json.RawMessage(result.Confirmation)})
}

func (h *PaymentHandler) respondVerifyError(c *gin.Context, err error) {
	var gatewayErr *service.GatewayError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "order not found or not accessible"})
	case errors.Is(err, service.ErrAmountMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": service.ErrAmountMismatch.Error()})
	case errors.As(err, &gatewayErr):
		// The provider's payload is usually JSON, but an intermediary can
		// answer with HTML or plain text; those are forwarded as a string so
		// the response body stays valid JSON.
		var payload any = gatewayErr.Payload
		if !json.Valid(gatewayErr.Payload) {
			payload = string(gatewayErr.Payload)
		}
		c.JSON(gatewayErr.StatusCode, gin.H{"success": false, "error": payload})
	default:
		log.Printf("payment verification failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to finalize the order"})
	}
}
