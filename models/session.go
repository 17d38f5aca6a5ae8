package models

import "time"

// Session is the live authentication binding for a signed-in user. It is held
// in Redis for its TTL only and carries no independent persistence; a missing
// session means the caller is anonymous.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	TokenHash  string    `json:"tokenHash"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}
