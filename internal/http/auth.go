package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-api/internal/auth"
)

const (
	tokenCookie = "token"
	identityKey = "identity"
)

// requireAuth extracts the token cookie, verifies it and stores the
// claims in the request context. It rejects before any handler runs: a
// missing cookie is 401, a bad or expired token is 403.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(tokenCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, err := h.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// mustIdentity returns the claims stored by requireAuth. Calling it from
// a route that is not behind the middleware is a programming error.
func mustIdentity(c *gin.Context) *auth.Claims {
	value, ok := c.Get(identityKey)
	if !ok {
		panic("identity requested on unauthenticated route")
	}
	return value.(*auth.Claims)
}

func (h *Handler) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(tokenCookie, token, int(h.tokens.TTL().Seconds()), "/", "", false, true)
}

func (h *Handler) clearTokenCookie(c *gin.Context) {
	c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
}
