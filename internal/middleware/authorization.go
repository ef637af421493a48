package middleware

import (
	"errors"
	"net/http"

	"github.com/babo072/my-shopping-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the caller's role. The profile is
// re-read from storage on every request rather than trusted from the token,
// so a role change takes effect on the next call. The resolved profile is
// stored in the context for the handler.
func RequirePermission(authzService *service.AuthorizationService, users service.UserService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := GetClaimsFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login is required"})
			c.Abort()
			return
		}

		profile, err := users.GetProfile(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "login is required"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "authorization check failed"})
			}
			c.Abort()
			return
		}

		allowed, err := authzService.CheckPermission(profile.Role, resource, action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			c.Abort()
			return
		}

		c.Set(contextKeyProfile, profile)
		c.Next()
	}
}
