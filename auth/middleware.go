package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messenger/domain"
)

const identityKey = "identity"

// Middleware validates the Authorization header of each request and
// injects the resolved identity into the gin context for downstream
// handlers. Requests without a valid token are rejected before any
// handler runs.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token is missing"})
			return
		}
		// Expecting the standard "Bearer <token>" format
		identity, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Middleware. The zero
// Identity is returned on routes that skipped authentication.
func IdentityFrom(c *gin.Context) domain.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}
	}
	identity, ok := value.(domain.Identity)
	if !ok {
		return domain.Identity{}
	}
	return identity
}
