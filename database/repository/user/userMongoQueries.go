// File: database/repository/user/userMongoQueries.go
package userRepo

import (
	"fmt"
	"time"

	"pulsefolio/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetAll returns every user profile, newest first.
func (r *MongoUserRepo) GetAll() ([]models.User, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// GetRole fetches only the role field for a user. A missing user or an empty
// role field is an error: callers rely on this never silently defaulting.
func (r *MongoUserRepo) GetRole(id string) (models.Role, error) {
	usr, err := r.GetByIDWithProjection(id, bson.M{"id": 1, "role": 1})
	if err != nil {
		return "", err
	}
	if usr == nil {
		return "", fmt.Errorf("user with id %s not found", id)
	}
	if !usr.Role.Valid() {
		return "", fmt.Errorf("user %s has no valid role", id)
	}
	return usr.Role, nil
}
