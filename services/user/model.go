package user

import (
	"context"

	userRepo "pulsefolio/database/repository/user"
	"pulsefolio/models"
)

// RegistrationInput carries the fields collected by the sign-up form.
type RegistrationInput struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	InvestmentBracket string `json:"investmentBracket,omitempty"`
}

// AuthResponse is returned after a successful registration or sign-in.
type AuthResponse struct {
	User      models.User `json:"user"`
	SessionID string      `json:"sessionId"`
	Token     string      `json:"token"`
}

// SessionManager is the slice of session behavior the user service needs.
// *session.Manager satisfies this.
type SessionManager interface {
	Create(ctx context.Context, sessionID string, user *models.User, tokenHash string) (*models.Session, error)
	Delete(ctx context.Context, sessionID, userID string) error
	NotifyRoleChanged(userID string)
}

// UserService defines business logic for user operations.
type UserService interface {
	// RegisterUser validates registration details, creates the profile with
	// the default role and signs the new user in.
	RegisterUser(input RegistrationInput) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and opens a session.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// SignOut closes the session; active protected views re-evaluate.
	SignOut(sessionID, userID string) error
	// GetUserByID retrieves a user (safe view) by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// UpdateUser updates an existing user's profile.
	UpdateUser(user models.User) (*models.User, error)
	// UpdateUserPassword verifies the current password and updates it.
	UpdateUserPassword(userID, currentPassword, newPassword string) error
	// DeleteUser removes a user record.
	DeleteUser(userID string) error

	// Admin routes.
	GetAllUsers() ([]models.User, error)
	UpdateUserRole(userID string, role models.Role) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Sessions SessionManager
}
