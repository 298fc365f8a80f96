package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextKeyPrincipal = "principal"

// PrincipalFromContext returns the principal set by RequireAuth/OptionalAuth.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(contextKeyPrincipal)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// RequireAuth returns a middleware that verifies the Authorization bearer token
// and sets the principal in context. Missing or invalid token responds with 401.
func RequireAuth(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "ERROR", "message": "access token is required"})
			return
		}
		p, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "ERROR", "message": "invalid or expired token"})
			return
		}
		c.Set(contextKeyPrincipal, p)
		c.Next()
	}
}

// OptionalAuth attaches a principal when a valid bearer token is present and
// proceeds unauthenticated otherwise. It never rejects the request.
func OptionalAuth(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if p, err := tokens.Verify(raw); err == nil {
				c.Set(contextKeyPrincipal, p)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
