package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulsefolio/models"
	"pulsefolio/services/access"
	"pulsefolio/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Manager owns session state in Redis and publishes every change on the
// broker. It is passed explicitly to whoever needs session access; nothing
// reads session state through package-level variables.
type Manager struct {
	client *redis.Client
	ttl    time.Duration
	events *access.Broker
}

// NewManager builds a session manager over a dedicated Redis client.
func NewManager(client *redis.Client, ttl time.Duration, events *access.Broker) *Manager {
	return &Manager{client: client, ttl: ttl, events: events}
}

// Events exposes the broker so protected views can subscribe to session
// changes.
func (m *Manager) Events() *access.Broker {
	return m.events
}

// Create stores a new session binding and announces the sign-in.
func (m *Manager) Create(ctx context.Context, sessionID string, user *models.User, tokenHash string) (*models.Session, error) {
	now := time.Now()
	sess := &models.Session{
		ID:         sessionID,
		UserID:     user.ID,
		Email:      user.Email,
		TokenHash:  tokenHash,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	if err := m.save(ctx, sess); err != nil {
		return nil, err
	}

	m.events.Publish(access.Event{Type: access.EventSignedIn, UserID: user.ID, SessionID: sessionID})
	return sess, nil
}

// Get retrieves a session by ID. A missing or expired session returns
// (nil, nil): absence means anonymous, it is not an error.
func (m *Manager) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := m.client.Get(ctx, utils.SessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Touch refreshes the session TTL and last-seen timestamp. Failures are
// logged, not returned: a stale last-seen never blocks a request.
func (m *Manager) Touch(ctx context.Context, sess *models.Session) {
	sess.LastSeenAt = time.Now()
	if err := m.save(ctx, sess); err != nil {
		utils.GetLogger().Warn("failed to touch session",
			zap.String("sessionID", sess.ID), zap.Error(err))
	}
}

// Delete removes the session binding and announces the sign-out. Deleting an
// already-absent session still publishes, so any view that raced the
// expiration re-evaluates.
func (m *Manager) Delete(ctx context.Context, sessionID, userID string) error {
	if err := m.client.Del(ctx, utils.SessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.events.Publish(access.Event{Type: access.EventSignedOut, UserID: userID, SessionID: sessionID})
	return nil
}

// NotifyRoleChanged announces a role mutation so every active session of the
// user re-evaluates its access.
func (m *Manager) NotifyRoleChanged(userID string) {
	m.events.Publish(access.Event{Type: access.EventRoleChanged, UserID: userID})
}

// NotifyTierChanged announces a fresh risk classification so personalized
// views refetch their content.
func (m *Manager) NotifyTierChanged(userID string) {
	m.events.Publish(access.Event{Type: access.EventTierChanged, UserID: userID})
}

func (m *Manager) save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := m.client.Set(ctx, utils.SessionKeyPrefix+sess.ID, data, m.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
