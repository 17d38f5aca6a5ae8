package utils

import (
	"context"
	"sync"
	"time"

	"pulsefolio/config"

	"go.uber.org/zap"
)

// HealthCheck probes one backing dependency. A nil return means healthy.
type HealthCheck func(ctx context.Context) error

// HealthStatus is the snapshot served on /health: one flag per named
// dependency (mongo profiles/content, the session store) plus the rollup.
type HealthStatus struct {
	Components map[string]bool `json:"components"`
	Healthy    bool            `json:"healthy"`
	CheckedAt  time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest snapshot. Before the first monitor tick
// it reports no components and healthy=false.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes the named dependencies on the configured interval
// and keeps the snapshot current. Check failures are logged but never fatal;
// /health reflects them until the dependency recovers.
func StartHealthMonitor(checks map[string]HealthCheck) {
	interval := time.Duration(config.AppConfig.HealthCheckIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			status := runHealthChecks(context.Background(), checks)
			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}

func runHealthChecks(ctx context.Context, checks map[string]HealthCheck) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := HealthStatus{
		Components: make(map[string]bool, len(checks)),
		Healthy:    true,
		CheckedAt:  time.Now(),
	}
	for name, check := range checks {
		err := check(ctx)
		if err != nil {
			GetLogger().Warn("health check failed",
				zap.String("component", name), zap.Error(err))
		}
		status.Components[name] = err == nil
		status.Healthy = status.Healthy && err == nil
	}
	return status
}
