package handler

import (
	"net/http"

	"github.com/babo072/my-shopping-mall/internal/middleware"
	"github.com/babo072/my-shopping-mall/internal/model"
	"github.com/babo072/my-shopping-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves order creation and the caller's order views.
type OrderHandler struct {
	orders *service.OrderService
	users  service.UserService
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(orders *service.OrderService, users service.UserService) *OrderHandler {
	return &OrderHandler{orders: orders, users: users}
}

// Create submits the cart as a new pending order.
func (h *OrderHandler) Create(c *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login is required"})
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// List returns the caller's orders; admins see every order. The status
// query accepts a stored status or the "in-progress" aggregate.
func (h *OrderHandler) List(c *gin.Context) {
	profile, ok := h.resolveProfile(c)
	if !ok {
		return
	}

	orders, err := h.orders.List(c.Request.Context(), profile, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Get returns one order, scoped to the caller unless they are an admin.
func (h *OrderHandler) Get(c *gin.Context) {
	profile, ok := h.resolveProfile(c)
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), profile, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// resolveProfile re-reads the caller's profile so the admin widening of
// order views always reflects the current role, not the token's snapshot.
func (h *OrderHandler) resolveProfile(c *gin.Context) (*model.Profile, bool) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login is required"})
		return nil, false
	}

	profile, err := h.users.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return profile, true
}
