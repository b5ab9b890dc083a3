package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// UsernamePattern определяет допустимый формат username
// Только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 3-32 символа
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// DefaultMinPasswordLen минимальная длина пароля по умолчанию
	DefaultMinPasswordLen = 8
)

// ValidateUsername проверяет, что username соответствует требованиям
// Формат: только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 3-32 символа
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword проверяет минимальную длину пароля в символах.
// minLen <= 0 означает DefaultMinPasswordLen.
func ValidatePassword(password string, minLen int) error {
	if minLen <= 0 {
		minLen = DefaultMinPasswordLen
	}

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if utf8.RuneCountInString(password) < minLen {
		return fmt.Errorf("%w: must be at least %d characters long", ErrPasswordTooShort, minLen)
	}

	return nil
}
