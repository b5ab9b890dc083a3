package auth

import (
	"errors"

	"github.com/iudanet/tabata/internal/validation"
)

var (
	// ErrInvalidCredentials неизвестный email, неверный пароль или отключенный пользователь.
	// Причина намеренно не уточняется.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWrongCurrentPassword текущий пароль не совпал при смене пароля
	ErrWrongCurrentPassword = errors.New("current password is incorrect")

	// ErrPasswordTooShort новый пароль короче минимальной длины
	ErrPasswordTooShort = validation.ErrPasswordTooShort

	// ErrTooManyAttempts превышен лимит попыток входа
	ErrTooManyAttempts = errors.New("too many login attempts, please try again later")
)
