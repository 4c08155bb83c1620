package middleware

import (
	"context"
	"net/http"
	"strings"

	"vodguard/internal/core/ports"
	"vodguard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	CtxSubjectID = "subject_id"
	CtxEmail     = "email"
	CtxRole      = "role"
)

// AuthMiddleware verifies the bearer access token and stores the subject's
// claims in the request context.
func AuthMiddleware(sessions ports.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "authorization header required",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid authorization header format",
			})
			return
		}

		claims, err := sessions.VerifyAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid or expired token",
			})
			return
		}

		c.Set(CtxSubjectID, claims.SubjectID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)

		// Make the subject visible to the context logger as well.
		ctx := context.WithValue(c.Request.Context(), logger.SubjectIDKey, string(claims.SubjectID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
