package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/service"
)

// IdentityContextKey is the gin context key holding the authenticated user
const IdentityContextKey = "identity"

// RequireAuth validates the bearer token and injects the authenticated
// identity into the request context. Handlers read the identity from the
// context instead of any ambient global state.
func RequireAuth(auth service.AuthService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid Authorization header format. Expected: 'Bearer {token}'",
			})
			return
		}

		identity, err := auth.ParseToken(parts[1])
		if err != nil {
			log.WithError(err).Warn("Rejected session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// RequireRole ensures the authenticated user has the given role
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated user from the request context,
// or nil when the request is unauthenticated.
func CurrentIdentity(c *gin.Context) *service.Identity {
	value, exists := c.Get(IdentityContextKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*service.Identity)
	if !ok {
		return nil
	}
	return identity
}
