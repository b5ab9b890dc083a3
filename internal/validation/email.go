package validation

import (
	"fmt"
	"strings"
)

// MaxEmailLen максимальная длина email (RFC 5321)
const MaxEmailLen = 254

// ValidateEmail выполняет упрощенную проверку формата email:
// непустая локальная часть, один '@' и точка в домене
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if strings.ContainsAny(email, " \t\r\n") {
		return fmt.Errorf("email must not contain whitespace")
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return fmt.Errorf("email must contain a single '@'")
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("email domain is invalid")
	}

	return nil
}
