package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userKey is the gin context key the authenticated user is stored under.
const userKey = "user"

// RequireAuth authenticates the request from its "Authorization: Token <key>"
// header and stores the resolved user in the gin context. Requests without a
// valid token are rejected before any handler logic runs.
func (s *Service) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		scheme, key, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Token") || key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		user, err := s.ResolveToken(c.Request.Context(), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userKey, user)
	}
}
