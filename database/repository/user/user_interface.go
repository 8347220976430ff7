package userRepo

import (
	"context"

	"staybook/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email, including the password hash.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs retrieves the users with the given IDs; unknown IDs are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update applies whitelisted changes and returns the updated user.
	Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	// Delete removes a user record by its ID and returns what was removed.
	Delete(ctx context.Context, id string) (*models.User, error)
}
