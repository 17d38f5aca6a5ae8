package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pulsefolio/models"
	"pulsefolio/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser creates a new profile with the default role and opens the
// first session.
func (s *DefaultUserService) RegisterUser(input RegistrationInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: email lookup failed",
			zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUser := &models.User{
		ID:                uuid.NewString(),
		Email:             email,
		PasswordHash:      string(hashed),
		Role:              models.RoleUser,
		InvestmentBracket: input.InvestmentBracket,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.Repo.Create(newUser); err != nil {
		utils.GetLogger().Error("RegisterUser: insert failed",
			zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp, err := s.openSession(newUser)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("user registered",
		zap.String("userID", newUser.ID), zap.String("email", email))
	return resp, nil
}

// openSession mints the session and its bound token for a verified user.
func (s *DefaultUserService) openSession(u *models.User) (*AuthResponse, error) {
	sessionID := uuid.NewString()
	token, err := utils.GenerateToken(u.ID, u.Email, sessionID, utils.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.Sessions.Create(ctx, sessionID, u, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{User: u.SafeView(), SessionID: sessionID, Token: token}, nil
}
