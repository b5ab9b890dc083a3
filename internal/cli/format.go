package cli

import (
	"fmt"
	"strings"

	"github.com/iudanet/tabata/internal/validation"
)

// formatClock форматирует секунды как MM:SS или H:MM:SS от часа
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// strengthBar шкала надежности пароля из 10 делений
func strengthBar(score int) string {
	filled := score / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}

func describeStrength(password string) string {
	score := validation.PasswordStrength(password)
	return fmt.Sprintf("%s %s (%d/100)", strengthBar(score), validation.StrengthOf(score), score)
}
