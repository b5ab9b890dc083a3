// Package auth хранит учетные данные пользователей: регистрация,
// проверка пароля, изменение профиля и пароля.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
	"github.com/iudanet/tabata/internal/validation"
)

// PasswordHasher хеширует и проверяет пароли
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// Service предоставляет функции работы с учетными данными
type Service struct {
	users          storage.UserStorage
	hasher         PasswordHasher
	limiter        *Limiter
	logger         *slog.Logger
	now            func() time.Time
	minPasswordLen int
}

// Option настраивает Service
type Option func(*Service)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLimiter включает ограничение частоты попыток входа
func WithLimiter(l *Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithMinPasswordLength задает минимальную длину пароля
func WithMinPasswordLength(n int) Option {
	return func(s *Service) { s.minPasswordLen = n }
}

// NewService создает новый сервис учетных данных
func NewService(users storage.UserStorage, hasher PasswordHasher, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		users:          users,
		hasher:         hasher,
		logger:         logger,
		now:            time.Now,
		minPasswordLen: validation.DefaultMinPasswordLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MinPasswordLength returns the configured minimum password length.
func (s *Service) MinPasswordLength() int {
	return s.minPasswordLen
}

// normalizeEmail email сравнивается без учета регистра и пробелов по краям
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser регистрирует пользователя
// Возвращает *validation.Error, storage.ErrUsernameTaken или storage.ErrEmailTaken
func (s *Service) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if err := validation.Collect(
		validation.ValidateUsername(username),
		validation.ValidateEmail(email),
		validation.ValidatePassword(password, s.minPasswordLen),
	); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
		IsActive:     true,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Authenticate проверяет email и пароль активного пользователя
// и обновляет время последнего входа
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	if !s.limiter.Allow(email) {
		s.logger.WarnContext(ctx, "login rate limit exceeded", slog.String("email", email))
		return nil, ErrTooManyAttempts
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored password hash is unreadable",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return nil, ErrInvalidCredentials
	}
	if !ok || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	s.limiter.Reset(email)

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &now

	s.logger.InfoContext(ctx, "user authenticated", slog.String("user_id", user.ID))

	return user, nil
}

// GetUser возвращает пользователя по ID
func (s *Service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// UpdateProfile изменяет username и/или email.
// Возвращает false, если не передано ни одного поля.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (bool, error) {
	if update.IsEmpty() {
		return false, nil
	}

	var checks []error
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		update.Username = &username
		checks = append(checks, validation.ValidateUsername(username))
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		update.Email = &email
		checks = append(checks, validation.ValidateEmail(email))
	}
	if err := validation.Collect(checks...); err != nil {
		return false, err
	}

	if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
		return false, fmt.Errorf("failed to update profile: %w", err)
	}

	return true, nil
}

// ChangePassword меняет пароль после проверки текущего
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := s.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil || !ok {
		return ErrWrongCurrentPassword
	}

	if err := validation.ValidatePassword(newPassword, s.minPasswordLen); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed", slog.String("user_id", userID))

	return nil
}

// SetActive включает или отключает пользователя
func (s *Service) SetActive(ctx context.Context, userID string, active bool) error {
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		return fmt.Errorf("failed to set user status: %w", err)
	}
	return nil
}
