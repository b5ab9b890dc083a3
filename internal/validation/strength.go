package validation

import (
	"unicode"
	"unicode/utf8"
)

// StrengthLevel словесная оценка надежности пароля
type StrengthLevel string

const (
	StrengthWeak   StrengthLevel = "weak"
	StrengthMedium StrengthLevel = "medium"
	StrengthStrong StrengthLevel = "strong"
)

// PasswordStrength оценивает пароль по шкале 0..100.
// Используется только для индикатора в интерфейсе и не влияет на валидацию.
func PasswordStrength(password string) int {
	score := 0
	n := utf8.RuneCountInString(password)

	if n >= 8 {
		score += 25
	}
	if n >= 12 {
		score += 15
	}

	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if hasDigit {
		score += 15
	}
	if hasUpper && hasLower {
		score += 20
	}
	if hasSpecial {
		score += 25
	}

	return min(score, 100)
}

// StrengthOf переводит оценку в уровень
func StrengthOf(score int) StrengthLevel {
	switch {
	case score >= 70:
		return StrengthStrong
	case score >= 40:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}
