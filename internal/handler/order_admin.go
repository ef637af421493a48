package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/babo072/my-shopping-mall/internal/middleware"
	"github.com/babo072/my-shopping-mall/internal/model"
	"github.com/babo072/my-shopping-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderAdminHandler exposes the privileged order mutations. Status and memo
// updates arrive either as JSON (back-office API calls) or as form posts
// carrying a redirectTo target, in which case the response is a 303 redirect
// with any error encoded as a message query parameter.
type OrderAdminHandler struct {
	admin *service.OrderAdminService
}

// NewOrderAdminHandler creates the admin order handler.
func NewOrderAdminHandler(admin *service.OrderAdminService) *OrderAdminHandler {
	return &OrderAdminHandler{admin: admin}
}

// UpdateStatus overwrites the status of one order.
func (h *OrderAdminHandler) UpdateStatus(c *gin.Context) {
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login is required"})
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.admin.UpdateStatus(c.Request.Context(), profile, c.Param("id"), req.Status)
	h.respond(c, req.RedirectTo, err)
}

// UpdateStatusBatch applies one status to a set of orders.
func (h *OrderAdminHandler) UpdateStatusBatch(c *gin.Context) {
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login is required"})
		return
	}

	var req model.UpdateOrderStatusBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.admin.UpdateStatusBatch(c.Request.Context(), profile, req.OrderIDs, req.Status)
	h.respond(c, "", err)
}

// UpdateMemo replaces the admin note on an order.
func (h *OrderAdminHandler) UpdateMemo(c *gin.Context) {
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login is required"})
		return
	}

	var req model.UpdateOrderMemoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.admin.UpdateMemo(c.Request.Context(), profile, c.Param("id"), req.AdminNote)
	h.respond(c, req.RedirectTo, err)
}

// respond finishes a mutation either as JSON or, for form flows, as a 303
// redirect carrying an encoded message on failure.
func (h *OrderAdminHandler) respond(c *gin.Context, redirectTo string, err error) {
	if redirectTo == "" {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	target := redirectTo
	if err != nil {
		target += "?message=" + url.QueryEscape(userFacingMessage(err))
	}
	c.Redirect(http.StatusSeeOther, target)
}

// userFacingMessage reduces a failure to the message shown on the redirect
// target page.
func userFacingMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return service.ErrForbidden.Error()
	case errors.Is(err, service.ErrInvalidRequest):
		return err.Error()
	case errors.Is(err, service.ErrNotFound):
		return service.ErrNotFound.Error()
	default:
		return "the requested change could not be saved"
	}
}
