package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/tabata/internal/dbx"
	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
)

const userColumns = `id, username, email, password_hash, created_at, is_active, last_login`

// CreateUser creates a new user in the storage
// Проверка уникальности и вставка выполняются в одной транзакции
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := checkUnique(ctx, tx, "", user.Username, user.Email); err != nil {
			return err
		}

		query := `
			INSERT INTO users (id, username, email, password_hash, created_at, is_active, last_login)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`

		_, err := tx.ExecContext(ctx, query,
			user.ID,
			user.Username,
			user.Email,
			user.PasswordHash,
			toUnix(user.CreatedAt),
			user.IsActive,
			toNullUnix(user.LastLogin),
		)
		if err != nil {
			if dup := uniqueViolation(err); dup != nil {
				return dup
			}
			return wrapErr("failed to insert user", err)
		}

		return nil
	})
}

// checkUnique проверяет, что email и username свободны.
// exceptID исключает самого пользователя при обновлении профиля.
func checkUnique(ctx context.Context, q dbx.DBTX, exceptID, username, email string) error {
	if email != "" {
		taken, err := exists(ctx, q, `SELECT 1 FROM users WHERE email = ? AND id != ?`, email, exceptID)
		if err != nil {
			return wrapErr("failed to check email", err)
		}
		if taken {
			return storage.ErrEmailTaken
		}
	}

	if username != "" {
		taken, err := exists(ctx, q, `SELECT 1 FROM users WHERE username = ? AND id != ?`, username, exceptID)
		if err != nil {
			return wrapErr("failed to check username", err)
		}
		if taken {
			return storage.ErrUsernameTaken
		}
	}

	return nil
}

func exists(ctx context.Context, q dbx.DBTX, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// uniqueViolation переводит нарушение UNIQUE на случай гонки между проверкой и вставкой
func uniqueViolation(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: users.email"):
		return storage.ErrEmailTaken
	case strings.Contains(msg, "UNIQUE constraint failed: users.username"):
		return storage.ErrUsernameTaken
	}
	return nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
}

// GetUserByEmail retrieves user by email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (s *Storage) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, wrapErr("failed to get user", err)
	}
	return user, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var createdAt int64
	var lastLogin sql.NullInt64

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
		&user.IsActive,
		&lastLogin,
	)
	if err != nil {
		return nil, err
	}

	user.CreatedAt = fromUnix(createdAt)
	user.LastLogin = fromNullUnix(lastLogin)

	return user, nil
}

// UpdateProfile changes username and/or email
func (s *Storage) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var username, email string
		var sets []string
		var args []any

		if update.Username != nil {
			username = *update.Username
			sets = append(sets, "username = ?")
			args = append(args, username)
		}
		if update.Email != nil {
			email = *update.Email
			sets = append(sets, "email = ?")
			args = append(args, email)
		}

		if err := checkUnique(ctx, tx, userID, username, email); err != nil {
			return err
		}

		args = append(args, userID)
		query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(sets, ", "))

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			if dup := uniqueViolation(err); dup != nil {
				return dup
			}
			return wrapErr("failed to update profile", err)
		}

		return checkAffected(result, storage.ErrUserNotFound)
	})
}

// UpdatePassword replaces the password hash
func (s *Storage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return wrapErr("failed to update password", err)
	}

	return checkAffected(result, storage.ErrUserNotFound)
}

// UpdateLastLogin updates the last login timestamp
func (s *Storage) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, toUnix(lastLogin), userID)
	if err != nil {
		return wrapErr("failed to update last login", err)
	}

	return checkAffected(result, storage.ErrUserNotFound)
}

// SetActive enables or disables the user
func (s *Storage) SetActive(ctx context.Context, userID string, active bool) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET is_active = ? WHERE id = ?`, active, userID)
	if err != nil {
		return wrapErr("failed to update user status", err)
	}

	return checkAffected(result, storage.ErrUserNotFound)
}
