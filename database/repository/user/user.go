package userRepo

import (
	"pulsefolio/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user profile data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(user *models.User) error
	// GetByID retrieves a user by their unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by their email.
	GetByEmail(email string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by ID returning only projected fields.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// GetByEmailWithProjection retrieves a user by email returning only projected fields.
	GetByEmailWithProjection(email string, projection bson.M) (*models.User, error)
	// UpdateSetDocument applies a partial $set update to a user document.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetAll returns every user profile (admin surface).
	GetAll() ([]models.User, error)
	// GetRole returns just the role field for a user.
	GetRole(id string) (models.Role, error)
}
