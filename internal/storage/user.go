package storage

import (
	"context"
	"time"

	"github.com/iudanet/tabata/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrEmailTaken or ErrUsernameTaken if a unique field already exists
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateProfile changes username and/or email
	// Returns ErrUserNotFound, ErrUsernameTaken or ErrEmailTaken
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error

	// UpdatePassword replaces the password hash
	// Returns ErrUserNotFound if user doesn't exist
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error

	// SetActive enables or disables the user
	SetActive(ctx context.Context, userID string, active bool) error
}
