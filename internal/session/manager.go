// Package session выдает, проверяет и отзывает непрозрачные токены сессий.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/tabata/internal/crypto"
	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
)

// Время жизни сессий по умолчанию
const (
	DefaultShortTTL    = 15 * time.Minute
	DefaultRememberTTL = 30 * 24 * time.Hour
)

// Manager управляет сессиями пользователей
type Manager struct {
	sessions    storage.SessionStorage
	logger      *slog.Logger
	now         func() time.Time
	newToken    func() (string, error)
	shortTTL    time.Duration
	rememberTTL time.Duration
}

// Option настраивает Manager
type Option func(*Manager)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithTTL задает время жизни обычной и запомненной сессии
func WithTTL(short, remember time.Duration) Option {
	return func(m *Manager) {
		if short > 0 {
			m.shortTTL = short
		}
		if remember > 0 {
			m.rememberTTL = remember
		}
	}
}

// NewManager создает менеджер сессий
func NewManager(sessions storage.SessionStorage, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions:    sessions,
		logger:      logger,
		now:         time.Now,
		newToken:    crypto.GenerateSessionToken,
		shortTTL:    DefaultShortTTL,
		rememberTTL: DefaultRememberTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateSession выдает новый токен пользователю.
// Перед вставкой удаляются истекшие и бессрочные сессии этого пользователя.
func (m *Manager) CreateSession(ctx context.Context, userID string, rememberMe bool) (string, error) {
	token, err := m.newToken()
	if err != nil {
		return "", err
	}

	now := m.now()
	ttl := m.shortTTL
	if rememberMe {
		ttl = m.rememberTTL
	}
	expiresAt := now.Add(ttl)

	s := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		TokenHash: crypto.HashToken(token),
		CreatedAt: now,
		ExpiresAt: &expiresAt,
	}

	pruned, err := m.sessions.CreateSession(ctx, s, now)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	m.logger.InfoContext(ctx, "session created",
		slog.String("user_id", userID),
		slog.Bool("remember_me", rememberMe),
		slog.Time("expires_at", expiresAt),
		slog.Int("pruned", pruned),
	)

	return token, nil
}

// ValidateSession возвращает владельца действующей сессии или nil.
// Причина отказа (истекла, отозвана, неизвестна, пользователь отключен) не раскрывается.
func (m *Manager) ValidateSession(ctx context.Context, token string) *models.User {
	if token == "" {
		return nil
	}

	user, err := m.sessions.GetSessionUser(ctx, crypto.HashToken(token), m.now())
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			m.logger.ErrorContext(ctx, "session validation failed",
				slog.String("token", tokenPrefix(token)),
				slog.Any("error", err),
			)
		}
		return nil
	}

	return user
}

// DeleteSession отзывает сессию. Неизвестный токен не ошибка.
func (m *Manager) DeleteSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := m.sessions.DeleteSession(ctx, crypto.HashToken(token)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	m.logger.InfoContext(ctx, "session deleted", slog.String("token", tokenPrefix(token)))

	return nil
}

// DeleteAllSessionsForUser отзывает все сессии пользователя
func (m *Manager) DeleteAllSessionsForUser(ctx context.Context, userID string) error {
	n, err := m.sessions.DeleteUserSessions(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}

	m.logger.InfoContext(ctx, "user sessions deleted",
		slog.String("user_id", userID),
		slog.Int("count", n),
	)

	return nil
}

// CleanupExpired удаляет истекшие сессии всех пользователей
func (m *Manager) CleanupExpired(ctx context.Context) (int, error) {
	n, err := m.sessions.DeleteExpiredSessions(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return n, nil
}

// tokenPrefix для логов: токен целиком не пишется никогда
func tokenPrefix(token string) string {
	const n = 6
	if len(token) <= n {
		return "***"
	}
	return token[:n] + "..."
}
