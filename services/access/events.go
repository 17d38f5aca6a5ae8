package access

import (
	"sync"
	"time"

	"pulsefolio/utils"

	"go.uber.org/zap"
)

// EventType identifies what changed about a session binding.
type EventType string

const (
	EventSignedIn    EventType = "signed_in"
	EventSignedOut   EventType = "signed_out"
	EventRoleChanged EventType = "role_changed"
	EventTierChanged EventType = "tier_changed"
)

// Event is a session-change notification. SessionID is set for events bound
// to a single session (sign-in, sign-out); UserID is always set so watchers
// can react to profile mutations affecting every session of that user.
type Event struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessionId,omitempty"`
	At        time.Time `json:"at"`
}

// Broker is an in-process fan-out of session-change events. It replaces the
// module-level listener list the auth layer would otherwise grow: everything
// that cares about session state gets an explicit, cancellable subscription.
type Broker struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Publish delivers the event to every live subscription in FIFO order per
// subscriber. Slow subscribers drop events rather than block the publisher;
// a dropped event only delays re-evaluation until the next one.
func (b *Broker) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			utils.GetLogger().Warn("session event dropped for slow subscriber",
				zap.Int("subscriber", id), zap.String("type", string(evt.Type)))
		}
	}
}

// Subscribe registers a new subscription. Callers must Cancel it on teardown.
func (b *Broker) Subscribe() *Subscription {
	ch := make(chan Event, 16)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	return &Subscription{
		C: ch,
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		},
	}
}

// Subscription is a cancellable stream of session-change events.
type Subscription struct {
	C      chan Event
	cancel func()
	once   sync.Once
}

// Cancel tears the subscription down. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}
