package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pulsefolio/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthenticateUser verifies credentials and opens a session. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: lookup failed",
			zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.openSession(u)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("user signed in", zap.String("userID", u.ID))
	return resp, nil
}

// SignOut deletes the session binding; its broker event makes every watching
// view re-evaluate.
func (s *DefaultUserService) SignOut(sessionID, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Sessions.Delete(ctx, sessionID, userID)
}
