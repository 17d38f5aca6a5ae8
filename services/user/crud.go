package user

import (
	"fmt"
	"time"

	"pulsefolio/models"
	"pulsefolio/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetUserByID retrieves a user profile by its unique ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	safe := u.SafeView()
	return &safe, nil
}

// UpdateUser applies a partial profile update. Only mutable profile fields
// are honored; role and credentials have their own paths.
func (s *DefaultUserService) UpdateUser(user models.User) (*models.User, error) {
	existing, err := s.Repo.GetByID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	update := bson.M{"updatedAt": time.Now()}
	if user.InvestmentBracket != "" {
		update["investmentBracket"] = user.InvestmentBracket
	}

	if err := s.Repo.UpdateSetDocument(user.ID, update); err != nil {
		utils.GetLogger().Error("UpdateUser: update failed",
			zap.String("userID", user.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.GetUserByID(user.ID)
}

// DeleteUser removes a user record.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if err := s.Repo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	utils.GetLogger().Info("user deleted", zap.String("userID", userID))
	return nil
}
