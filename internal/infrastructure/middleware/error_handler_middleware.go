package middleware

import (
	"net/http"

	"vodguard/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware maps application errors to the uniform JSON error
// body. Internals are logged server-side and never leaked to the caller.
func ErrorHandlerMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		if c.Writer.Written() {
			// A handler already produced a response (e.g. a stream that
			// failed mid-body); nothing sensible to send anymore.
			return
		}

		err := c.Errors.Last().Err

		appErr := errors.GetAppError(err)
		if appErr != nil {
			if appErr.HTTPStatus >= http.StatusInternalServerError {
				logger.Errorw("application error",
					"code", appErr.Code,
					"message", appErr.Message,
					"cause", appErr.Cause,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				c.JSON(appErr.HTTPStatus, gin.H{
					"success": false,
					"error":   "Internal server error",
				})
				return
			}

			c.JSON(appErr.HTTPStatus, gin.H{
				"success": false,
				"error":   appErr.Message,
			})
			return
		}

		logger.Errorw("unhandled error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
	}
}

// RecoveryMiddleware recovers from panics and returns proper error responses
func RecoveryMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorw("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)

				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, gin.H{
						"success": false,
						"error":   "Internal server error",
					})
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
