package user

import (
	"fmt"
	"time"

	"pulsefolio/models"
	"pulsefolio/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetAllUsers lists every profile, credentials stripped.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i] = users[i].SafeView()
	}
	return users, nil
}

// UpdateUserRole assigns a new role and broadcasts the change so every
// active session of the user re-evaluates its access immediately.
func (s *DefaultUserService) UpdateUserRole(userID string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %q", role)
	}

	existing, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	update := bson.M{
		"role":      role,
		"updatedAt": time.Now(),
	}
	if err := s.Repo.UpdateSetDocument(userID, update); err != nil {
		utils.GetLogger().Error("UpdateUserRole: update failed",
			zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.Sessions.NotifyRoleChanged(userID)

	utils.GetLogger().Info("role updated",
		zap.String("userID", userID),
		zap.String("from", string(existing.Role)),
		zap.String("to", string(role)))

	return s.GetUserByID(userID)
}
