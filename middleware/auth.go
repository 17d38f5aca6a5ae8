package middleware

import (
	"context"
	"strings"
	"time"

	"pulsefolio/models"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by SessionMiddleware and read by handlers.
const (
	CtxSession   = "session"
	CtxUserID    = "userID"
	CtxSessionID = "sessionID"
)

// SessionStore is the session lookup surface the middleware needs.
// *session.Manager satisfies this.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Touch(ctx context.Context, sess *models.Session)
}

// SessionMiddleware resolves the bearer token into a session and stashes it
// in the request context. It never aborts: requests without a valid session
// simply carry no session, and RequireRole decides what that means for the
// route. A Redis failure is recorded on the context so the decision can
// distinguish "anonymous" from "could not check".
func SessionMiddleware(store SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, sessionID, err := utils.ExtractIDsFromToken(token)
		if err != nil {
			utils.GetLogger().Debug("rejected token", zap.Error(err))
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		sess, err := store.Get(ctx, sessionID)
		if err != nil {
			utils.GetLogger().Error("session lookup failed",
				zap.String("sessionID", sessionID), zap.Error(err))
			c.Set("sessionLookupErr", err)
			c.Next()
			return
		}
		if sess == nil || sess.UserID != userID || sess.TokenHash != utils.HashToken(token) {
			c.Next()
			return
		}

		store.Touch(ctx, sess)
		c.Set(CtxSession, sess)
		c.Set(CtxUserID, sess.UserID)
		c.Set(CtxSessionID, sess.ID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SessionFromContext returns the resolved session, or nil for anonymous
// requests.
func SessionFromContext(c *gin.Context) *models.Session {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}
