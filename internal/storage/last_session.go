package storage

import (
	"context"
	"time"
)

// LastSession данные для тихого восстановления входа после перезапуска
type LastSession struct {
	SavedAt  time.Time `json:"saved_at"`
	Token    string    `json:"token"`
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
}

// LastSessionStorage хранит токен последней сессии между запусками приложения
type LastSessionStorage interface {
	// SaveLastSession replaces the remembered session
	SaveLastSession(ctx context.Context, s *LastSession) error

	// GetLastSession returns ErrLastSessionNotFound if nothing is remembered
	GetLastSession(ctx context.Context) (*LastSession, error)

	// DeleteLastSession forgets the remembered session; idempotent
	DeleteLastSession(ctx context.Context) error
}
