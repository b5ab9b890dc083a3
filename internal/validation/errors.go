package validation

import (
	"errors"
	"strings"
)

// ErrValidation базовая ошибка для всех ошибок валидации
var ErrValidation = errors.New("validation failed")

// ErrPasswordTooShort пароль короче минимально допустимой длины
var ErrPasswordTooShort = errors.New("password is too short")

// Error структурированная ошибка валидации со списком
// человекочитаемых сообщений для пользователя
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

// Unwrap позволяет использовать errors.Is(err, ErrValidation)
func (e *Error) Unwrap() error {
	return ErrValidation
}

// Collect объединяет результаты проверок в одну ошибку.
// Возвращает nil, если все проверки прошли.
func Collect(errs ...error) error {
	var problems []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *Error
		if errors.As(err, &verr) {
			problems = append(problems, verr.Problems...)
			continue
		}
		problems = append(problems, err.Error())
	}
	if len(problems) == 0 {
		return nil
	}
	return &Error{Problems: problems}
}
