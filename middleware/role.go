package middleware

import (
	"net/http"

	"pulsefolio/models"
	"pulsefolio/services/access"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRole guards a route group behind an access evaluation. The required
// role may be empty, which admits any authenticated session. Every
// non-granted outcome maps to a response the client can act on:
//
//   - no session: 401 with a redirect to the login view, carrying the
//     requested location for post-login resume
//   - insufficient role: 403 with a redirect back to the dashboard
//   - undecidable (profile or session store unavailable): 503, retryable;
//     an infrastructure failure never widens access
func RequireRole(gate *access.Gate, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)

		if sess == nil {
			if _, degraded := c.Get("sessionLookupErr"); degraded {
				countDenial(string(access.StateUnknown))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, access.Decision{
					State:  access.StateUnknown,
					Notice: "Could not verify your session, please retry",
				})
				return
			}
		}

		decision := gate.Evaluate(sess, required, c.Request.URL.Path)
		switch decision.State {
		case access.StateGranted:
			c.Next()
		case access.StateDeniedUnauthenticated:
			countDenial(string(decision.State))
			c.AbortWithStatusJSON(http.StatusUnauthorized, decision)
		case access.StateDeniedInsufficientRole:
			countDenial(string(decision.State))
			utils.GetLogger().Warn("insufficient role",
				zap.String("userID", sess.UserID),
				zap.String("required", string(required)),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, decision)
		default:
			countDenial(string(access.StateUnknown))
			utils.GetLogger().Error("access evaluation undecidable",
				zap.String("path", c.Request.URL.Path), zap.Error(decision.Err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, decision)
		}
	}
}
