// Package app связывает учетные записи, сессии и файл последней сессии
// в сценарии регистрации, входа, восстановления и выхода.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/tabata/internal/auth"
	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/session"
	"github.com/iudanet/tabata/internal/storage"
	"github.com/iudanet/tabata/internal/validation"
)

// ErrNotAuthenticated нет действующей сессии
var ErrNotAuthenticated = errors.New("not authenticated")

// Current вошедший пользователь и его токен
type Current struct {
	User  *models.User
	Token string
}

// App сценарии работы с учетной записью
type App struct {
	auth     *auth.Service
	sessions *session.Manager
	last     storage.LastSessionStorage
	logger   *slog.Logger
	now      func() time.Time
}

// Option настраивает App
type Option func(*App)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// New создает App
func New(authSvc *auth.Service, sessions *session.Manager, last storage.LastSessionStorage, logger *slog.Logger, opts ...Option) *App {
	a := &App{
		auth:     authSvc,
		sessions: sessions,
		last:     last,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register проверяет форму регистрации, создает пользователя и сразу выполняет вход
// без "запомнить меня"
func (a *App) Register(ctx context.Context, username, email, password, confirm string) (*Current, error) {
	if err := validation.ValidateRegistration(username, email, password, confirm, a.auth.MinPasswordLength()); err != nil {
		return nil, err
	}

	user, err := a.auth.CreateUser(ctx, username, email, password)
	if err != nil {
		return nil, err
	}

	return a.startSession(ctx, user, false)
}

// Login проверяет учетные данные и открывает сессию
func (a *App) Login(ctx context.Context, email, password string, rememberMe bool) (*Current, error) {
	user, err := a.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return a.startSession(ctx, user, rememberMe)
}

func (a *App) startSession(ctx context.Context, user *models.User, rememberMe bool) (*Current, error) {
	token, err := a.sessions.CreateSession(ctx, user.ID, rememberMe)
	if err != nil {
		return nil, err
	}

	a.remember(ctx, user, token)

	return &Current{User: user, Token: token}, nil
}

// remember сохраняет токен для следующего запуска; ошибка только логируется
func (a *App) remember(ctx context.Context, user *models.User, token string) {
	err := a.last.SaveLastSession(ctx, &storage.LastSession{
		SavedAt:  a.now(),
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		a.logger.WarnContext(ctx, "failed to save last session",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

// forget очищает файл последней сессии; ошибка только логируется
func (a *App) forget(ctx context.Context) {
	if err := a.last.DeleteLastSession(ctx); err != nil {
		a.logger.WarnContext(ctx, "failed to clear last session", slog.Any("error", err))
	}
}

// Restore восстанавливает вход по сохраненному токену.
// Возвращает ErrNotAuthenticated, если токена нет или он больше не действует;
// недействующий токен удаляется из файла.
func (a *App) Restore(ctx context.Context) (*Current, error) {
	last, err := a.last.GetLastSession(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrLastSessionNotFound) {
			a.logger.WarnContext(ctx, "failed to read last session", slog.Any("error", err))
		}
		return nil, ErrNotAuthenticated
	}

	user := a.sessions.ValidateSession(ctx, last.Token)
	if user == nil {
		a.logger.InfoContext(ctx, "stored session is no longer valid",
			slog.String("user_id", last.UserID),
		)
		a.forget(ctx)
		return nil, ErrNotAuthenticated
	}

	return &Current{User: user, Token: last.Token}, nil
}

// Logout отзывает сессию и очищает файл последней сессии
func (a *App) Logout(ctx context.Context, cur *Current) error {
	if cur != nil {
		if err := a.sessions.DeleteSession(ctx, cur.Token); err != nil {
			return err
		}
	}

	a.forget(ctx)
	return nil
}

// ChangePassword меняет пароль и отзывает все сессии пользователя,
// включая текущую. После смены нужен повторный вход.
func (a *App) ChangePassword(ctx context.Context, cur *Current, currentPassword, newPassword, confirm string) error {
	if cur == nil {
		return ErrNotAuthenticated
	}
	if newPassword != confirm {
		return &validation.Error{Problems: []string{"passwords do not match"}}
	}

	if err := a.auth.ChangePassword(ctx, cur.User.ID, currentPassword, newPassword); err != nil {
		return err
	}

	if err := a.sessions.DeleteAllSessionsForUser(ctx, cur.User.ID); err != nil {
		return fmt.Errorf("password changed but sessions were not revoked: %w", err)
	}

	a.forget(ctx)
	return nil
}

// UpdateProfile меняет username и/или email вошедшего пользователя
func (a *App) UpdateProfile(ctx context.Context, cur *Current, update models.ProfileUpdate) (*models.User, error) {
	if cur == nil {
		return nil, ErrNotAuthenticated
	}

	if _, err := a.auth.UpdateProfile(ctx, cur.User.ID, update); err != nil {
		return nil, err
	}

	user, err := a.auth.GetUser(ctx, cur.User.ID)
	if err != nil {
		return nil, err
	}
	cur.User = user

	return user, nil
}

// CleanupSessions удаляет истекшие сессии; вызывается при старте
func (a *App) CleanupSessions(ctx context.Context) {
	n, err := a.sessions.CleanupExpired(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to cleanup expired sessions", slog.Any("error", err))
		return
	}
	if n > 0 {
		a.logger.DebugContext(ctx, "expired sessions removed", slog.Int("count", n))
	}
}
