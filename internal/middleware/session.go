package middleware

import (
	"net/http"
	"strings"

	jwtsvc "salonagenda/internal/pkg/jwt"
	"salonagenda/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// DraftIDKey is the gin context key holding the caller's draft id.
const DraftIDKey = "draft_id"

// BookingSession resolves the bearer session token to the draft it was issued for.
func BookingSession(j *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			return
		}

		claims, err := j.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired booking session")
			return
		}

		c.Set(DraftIDKey, claims.DraftID)
		c.Next()
	}
}
