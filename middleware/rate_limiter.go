package middleware

import (
	"net/http"
	"sync"
	"time"

	"pulsefolio/config"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	limiters   = make(map[string]*clientLimiter)
	limitersMu sync.Mutex
)

// RateLimiter throttles requests per client IP using the configured
// per-minute budget.
func RateLimiter() gin.HandlerFunc {
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 60
	}
	limit := rate.Every(time.Minute / time.Duration(perMin))

	go cleanupLimiters()

	return func(c *gin.Context) {
		ip := getClientIP(c)

		limitersMu.Lock()
		cl, ok := limiters[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(limit, perMin)}
			limiters[ip] = cl
		}
		cl.lastSeen = time.Now()
		limitersMu.Unlock()

		if !cl.limiter.Allow() {
			utils.JSONError(c, http.StatusTooManyRequests,
				"Too many requests", "Slow down and try again shortly.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// cleanupLimiters drops entries for clients idle longer than ten minutes.
func cleanupLimiters() {
	for range time.Tick(time.Minute) {
		limitersMu.Lock()
		for ip, cl := range limiters {
			if time.Since(cl.lastSeen) > 10*time.Minute {
				delete(limiters, ip)
			}
		}
		limitersMu.Unlock()
	}
}
