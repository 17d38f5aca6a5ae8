package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHealthChecksAllHealthy(t *testing.T) {
	ok := func(context.Context) error { return nil }

	status := runHealthChecks(context.Background(), map[string]HealthCheck{
		"mongo":    ok,
		"sessions": ok,
	})

	assert.True(t, status.Healthy)
	assert.Equal(t, map[string]bool{"mongo": true, "sessions": true}, status.Components)
	assert.False(t, status.CheckedAt.IsZero())
}

func TestRunHealthChecksReportsFailingComponent(t *testing.T) {
	status := runHealthChecks(context.Background(), map[string]HealthCheck{
		"mongo":    func(context.Context) error { return nil },
		"sessions": func(context.Context) error { return errors.New("connection refused") },
	})

	assert.False(t, status.Healthy)
	assert.True(t, status.Components["mongo"])
	assert.False(t, status.Components["sessions"])
}

func TestRunHealthChecksPassesDeadlineToChecks(t *testing.T) {
	var sawDeadline bool
	runHealthChecks(context.Background(), map[string]HealthCheck{
		"mongo": func(ctx context.Context) error {
			_, sawDeadline = ctx.Deadline()
			return nil
		},
	})
	require.True(t, sawDeadline, "checks must run under a timeout")
}
