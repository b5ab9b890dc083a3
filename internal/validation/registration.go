package validation

import "fmt"

// ValidateRegistration проверяет данные формы регистрации целиком
func ValidateRegistration(username, email, password, confirm string, minPasswordLen int) error {
	var mismatch error
	if password != confirm {
		mismatch = fmt.Errorf("passwords do not match")
	}

	return Collect(
		ValidateUsername(username),
		ValidateEmail(email),
		ValidatePassword(password, minPasswordLen),
		mismatch,
	)
}
