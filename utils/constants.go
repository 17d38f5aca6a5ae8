// File: utils/constants.go
package utils

import "time"

// SessionKeyPrefix is the prefix used for Redis session keys.
const SessionKeyPrefix = "session:"

// TokenTTL is the lifetime of issued access tokens; it matches the default
// session TTL so a token never outlives its session.
const TokenTTL = 12 * time.Hour
