package userRepo

import "glowtheory/models"

// UserRepository defines methods for identity record access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its (pseudo-)email, or nil when absent.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
}
