package user

import (
	"fmt"
	"time"

	"pulsefolio/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UpdateUserPassword verifies the current password before setting a new one.
func (s *DefaultUserService) UpdateUserPassword(userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrIncorrectPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	update := bson.M{
		"passwordHash": string(hashed),
		"updatedAt":    time.Now(),
	}
	if err := s.Repo.UpdateSetDocument(userID, update); err != nil {
		utils.GetLogger().Error("UpdateUserPassword: update failed",
			zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to update password: %w", err)
	}

	utils.GetLogger().Info("password updated", zap.String("userID", userID))
	return nil
}
