package handler

import (
	"net/http"

	"github.com/babo072/my-shopping-mall/internal/auth"
	"github.com/babo072/my-shopping-mall/internal/model"
	"github.com/babo072/my-shopping-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	users  service.UserService
	tokens *auth.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users service.UserService, tokens *auth.Service) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Signup creates an account with a customer profile and returns a session
// token.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.users.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.IssueToken(profile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.LoginResponse{Token: token, Profile: *profile})
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.users.VerifyCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.IssueToken(profile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{Token: token, Profile: *profile})
}

// Logout acknowledges session termination. Tokens are stateless; the client
// discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
