package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iudanet/tabata/internal/dbx"
	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
)

// CreateSession удаляет устаревшие сессии пользователя и сохраняет новую.
// Устаревшими считаются истекшие к now и сессии без срока действия.
func (s *Storage) CreateSession(ctx context.Context, session *models.Session, now time.Time) (int, error) {
	var pruned int

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM user_sessions WHERE user_id = ? AND (expires_at IS NULL OR expires_at < ?)`,
			session.UserID, toUnix(now),
		)
		if err != nil {
			return wrapErr("failed to prune sessions", err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return wrapErr("failed to get rows affected", err)
		}
		pruned = int(n)

		query := `
			INSERT INTO user_sessions (id, user_id, session_token, created_at, expires_at)
			VALUES (?, ?, ?, ?, ?)
		`

		_, err = tx.ExecContext(ctx, query,
			session.ID,
			session.UserID,
			session.TokenHash,
			toUnix(session.CreatedAt),
			toNullUnix(session.ExpiresAt),
		)
		if err != nil {
			return wrapErr("failed to insert session", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return pruned, nil
}

// GetSessionUser returns the owner of a valid session
func (s *Storage) GetSessionUser(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.is_active, u.last_login
		FROM user_sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.session_token = ?
		  AND u.is_active = 1
		  AND (s.expires_at IS NULL OR s.expires_at > ?)
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, tokenHash, toUnix(now)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, wrapErr("failed to get session", err)
	}

	return user, nil
}

// DeleteSession deletes session by token hash
func (s *Storage) DeleteSession(ctx context.Context, tokenHash string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE session_token = ?`, tokenHash); err != nil {
		return wrapErr("failed to delete session", err)
	}
	return nil
}

// DeleteUserSessions deletes all sessions of a user
func (s *Storage) DeleteUserSessions(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, wrapErr("failed to delete user sessions", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, wrapErr("failed to get rows affected", err)
	}

	return int(rows), nil
}

// CountExpiredSessions returns number of user's sessions expired at now
func (s *Storage) CountExpiredSessions(ctx context.Context, userID string, now time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_sessions WHERE user_id = ? AND expires_at IS NOT NULL AND expires_at < ?`,
		userID, toUnix(now),
	).Scan(&n)
	if err != nil {
		return 0, wrapErr("failed to count sessions", err)
	}

	return n, nil
}

// DeleteExpiredSessions removes expired sessions of all users
func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM user_sessions WHERE expires_at IS NOT NULL AND expires_at <= ?`, toUnix(now))
	if err != nil {
		return 0, wrapErr("failed to delete expired sessions", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, wrapErr("failed to get rows affected", err)
	}

	return int(rows), nil
}
