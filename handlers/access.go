package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pulsefolio/middleware"
	"pulsefolio/models"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WatchAccessHandler streams access decisions for one protected view over
// SSE. The client names the role the view requires (?role=analyst) and the
// location it is rendering (?from=/admin). Each session change that affects
// the caller produces at most one fresh decision; intermediate states are
// coalesced away. Closing the request tears the watch down.
func WatchAccessHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFromContext(c)

		var required models.Role
		if raw := c.Query("role"); raw != "" {
			parsed, err := models.ParseRole(raw)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "Invalid role", err.Error())
				return
			}
			required = parsed
		}
		location := c.Query("from")
		if location == "" {
			location = c.Request.URL.Path
		}

		// An anonymous caller has no session to watch; send the single
		// unauthenticated decision and finish.
		if sess == nil {
			d := bundle.Gate.Evaluate(nil, required, location)
			c.Header("Content-Type", "text/event-stream")
			writeDecisionEvent(c, d)
			return
		}

		ctx := c.Request.Context()
		watcher := bundle.Gate.Watch(ctx, bundle.Sessions, bundle.Sessions.Events(), sess.ID, required, location)

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-watcher.Updates():
				if !ok {
					return
				}
				writeDecisionEvent(c, d)
			}
		}
	}
}

func writeDecisionEvent(c *gin.Context, d interface{}) {
	payload, err := json.Marshal(d)
	if err != nil {
		utils.GetLogger().Error("failed to marshal access decision", zap.Error(err))
		return
	}
	fmt.Fprintf(c.Writer, "event: decision\ndata: %s\n\n", payload)
	c.Writer.Flush()
}
