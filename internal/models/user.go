package models

import "time"

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time  `json:"created_at"`           // время регистрации
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последнего входа
	ID           string     `json:"id"`                   // UUID пользователя
	Username     string     `json:"username"`             // уникальный username
	Email        string     `json:"email"`                // уникальный email, используется для входа
	PasswordHash string     `json:"-"`                    // argon2id хеш пароля в PHC формате
	IsActive     bool       `json:"is_active"`            // false = пользователь отключен
}

// Session представляет сессию пользователя
// Token хранится только у клиента, в БД лежит TokenHash
type Session struct {
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil = устаревшая запись без срока действия
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Token     string     `json:"-"`
	TokenHash string     `json:"-"`
}

// IsExpired reports whether the session is no longer valid at now.
// A session without expiry never expires by time alone.
func (s *Session) IsExpired(now time.Time) bool {
	if s.ExpiresAt == nil {
		return false
	}
	return !now.Before(*s.ExpiresAt)
}

// ProfileUpdate содержит изменяемые поля профиля. nil = поле не меняется
type ProfileUpdate struct {
	Username *string
	Email    *string
}

// IsEmpty reports whether no recognized field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Username == nil && p.Email == nil
}
