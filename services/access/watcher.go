package access

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"pulsefolio/models"
	"pulsefolio/utils"

	"go.uber.org/zap"
)

// SessionSource reads the current session binding. The session manager
// satisfies this; it is the single source of truth, so the watcher never
// holds a session longer than one evaluation.
type SessionSource interface {
	Get(ctx context.Context, sessionID string) (*models.Session, error)
}

// Watcher keeps one protected view's access decision current. It subscribes
// to session-change events and re-evaluates on each relevant one. Re-entrant
// evaluations follow last-event-wins: a resolution still in flight when a
// newer event arrives can never overwrite the newer outcome.
//
// Each watcher is independent; nothing is shared between watchers beyond the
// session source itself. The context passed to Watch controls the lifetime:
// cancelling it (view teardown) stops the subscription and closes Updates.
type Watcher struct {
	gate      *Gate
	sessions  SessionSource
	sessionID string
	required  models.Role
	location  string

	gen     atomic.Uint64
	mu      sync.Mutex
	current Decision
	userID  string
	closed  bool

	updates chan Decision
}

// Watch starts a watcher for one protected view. The initial decision is
// StateUnknown until the first evaluation completes.
func (g *Gate) Watch(ctx context.Context, sessions SessionSource, broker *Broker, sessionID string, required models.Role, location string) *Watcher {
	w := &Watcher{
		gate:      g,
		sessions:  sessions,
		sessionID: sessionID,
		required:  required,
		location:  location,
		current:   Decision{State: StateUnknown},
		updates:   make(chan Decision, 1),
	}

	sub := broker.Subscribe()
	go w.run(ctx, sub)
	w.trigger(ctx)
	return w
}

// Updates delivers decision changes, coalesced to the latest. The channel is
// closed when the watch context is cancelled.
func (w *Watcher) Updates() <-chan Decision {
	return w.updates
}

// Current returns the most recent decision.
func (w *Watcher) Current() Decision {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *Watcher) run(ctx context.Context, sub *Subscription) {
	defer sub.Cancel()
	defer func() {
		w.mu.Lock()
		w.closed = true
		close(w.updates)
		w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-sub.C:
			if !ok {
				return
			}
			if w.relevant(evt) {
				w.trigger(ctx)
			}
		}
	}
}

// relevant filters events down to the ones that can change this view's
// decision: anything bound to our session, or any profile mutation for the
// user currently behind it.
func (w *Watcher) relevant(evt Event) bool {
	if evt.SessionID != "" && evt.SessionID == w.sessionID {
		return true
	}
	w.mu.Lock()
	userID := w.userID
	w.mu.Unlock()
	if userID == "" {
		// Identity not resolved yet; err on the side of re-evaluating.
		return true
	}
	return evt.UserID != "" && evt.UserID == userID
}

// trigger starts an evaluation tagged with a fresh generation. Only the
// evaluation matching the latest generation may publish its result.
func (w *Watcher) trigger(ctx context.Context) {
	gen := w.gen.Add(1)
	go w.evaluate(ctx, gen)
}

func (w *Watcher) evaluate(ctx context.Context, gen uint64) {
	var d Decision

	sess, err := w.sessions.Get(ctx, w.sessionID)
	if err != nil {
		// Fail closed: an unreadable session is not an absent one.
		d = Decision{
			State:  StateUnknown,
			Notice: "Could not verify your session, please retry",
			Err:    fmt.Errorf("session fetch failed: %w", err),
		}
	} else {
		d = w.gate.Evaluate(sess, w.required, w.location)
	}

	if d.Err != nil {
		utils.GetLogger().Warn("access evaluation failed",
			zap.String("sessionID", w.sessionID), zap.Error(d.Err))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.gen.Load() {
		// A newer event superseded this evaluation; drop the stale result.
		return
	}
	if err == nil && sess != nil {
		w.userID = sess.UserID
	}
	w.current = d

	if w.closed {
		return
	}
	// Coalesce: drop the undelivered previous decision, keep the latest.
	delivered := false
	for !delivered {
		select {
		case w.updates <- d:
			delivered = true
		default:
			select {
			case <-w.updates:
			default:
			}
		}
	}
}
