package middleware

import (
	"net/http"
	"strings"

	"github.com/babo072/my-shopping-mall/internal/auth"
	"github.com/babo072/my-shopping-mall/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	contextKeyClaims  = "claims"
	contextKeyProfile = "profile"
)

// AuthMiddleware validates the bearer token and stores the session claims in
// the request context.
func AuthMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login is required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// GetClaimsFromContext returns the session claims set by AuthMiddleware.
func GetClaimsFromContext(c *gin.Context) (*model.JWTClaims, bool) {
	value, exists := c.Get(contextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*model.JWTClaims)
	return claims, ok
}

// GetProfileFromContext returns the profile set by RequirePermission.
func GetProfileFromContext(c *gin.Context) (*model.Profile, bool) {
	value, exists := c.Get(contextKeyProfile)
	if !exists {
		return nil, false
	}
	profile, ok := value.(*model.Profile)
	return profile, ok
}
