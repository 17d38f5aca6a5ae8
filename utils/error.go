package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the envelope every non-2xx JSON response uses. Notice is
// the user-facing line, same vocabulary as access denials.
type ErrorResponse struct {
	Message string `json:"message"`
	Notice  string `json:"notice,omitempty"`
}

// ErrorHandler converts handler panics into a retryable 500 instead of
// dropping the connection.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("panic recovered",
					zap.Any("panic", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal server error",
					Notice:  "Something went wrong on our side, please retry",
				})
			}
		}()
		c.Next()
	}
}

// JSONError writes a standardized error response and logs it with the
// request route for correlation.
func JSONError(c *gin.Context, status int, message string, notice string) {
	GetLogger().Warn(message,
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("notice", notice))
	c.JSON(status, ErrorResponse{Message: message, Notice: notice})
}
