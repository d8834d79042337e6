package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/flocknet/flock/internal/util"
)

// Middleware validates the Authorization header on protected routes and
// stores the authenticated user in the Gin context under "user" and
// "user_id".
//
// A missing or malformed header is a client formatting mistake and gets a
// 400; a well-formed Bearer token that fails validation gets a 401.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.RespondBadRequest(c, "missing Authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			util.RespondBadRequest(c, "malformed Authorization header, expected 'Bearer <token>'")
			c.Abort()
			return
		}

		user, err := s.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			util.RespondUnauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}
