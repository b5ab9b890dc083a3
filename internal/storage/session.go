package storage

import (
	"context"
	"time"

	"github.com/iudanet/tabata/internal/models"
)

// SessionStorage defines interface for login session persistence
type SessionStorage interface {
	// CreateSession removes the user's stale sessions (expired at now or without expiry)
	// and stores the new one in a single transaction
	// Returns number of pruned sessions
	CreateSession(ctx context.Context, session *models.Session, now time.Time) (int, error)

	// GetSessionUser returns the owner of a valid session
	// The user must be active and the session not expired at now
	// Returns ErrSessionNotFound otherwise
	GetSessionUser(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)

	// DeleteSession deletes session by token hash
	// Deleting a nonexistent session is not an error
	DeleteSession(ctx context.Context, tokenHash string) error

	// DeleteUserSessions deletes all sessions of a user
	// Returns number of deleted sessions
	DeleteUserSessions(ctx context.Context, userID string) (int, error)

	// CountExpiredSessions returns number of user's sessions expired at now
	CountExpiredSessions(ctx context.Context, userID string, now time.Time) (int, error)

	// DeleteExpiredSessions removes expired sessions of all users
	// Returns number of deleted sessions
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}
