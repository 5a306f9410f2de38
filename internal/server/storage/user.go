package storage

import (
	"context"

	"github.com/iudanet/leeroy/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrEmailTaken if the email is already used
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// SetAdmin updates the is_admin flag
	// Returns ErrUserNotFound if user doesn't exist
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error

	// CountAdmins returns the number of users with the admin flag set
	CountAdmins(ctx context.Context) (int, error)

	// DeleteUser deletes user by ID. Token records of the user are
	// removed by the schema-level cascade.
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, userID string) error
}
