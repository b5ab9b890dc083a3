package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// SessionTokenSize - энтропия токена сессии в байтах (256 бит)
const SessionTokenSize = 32

// GenerateSessionToken генерирует непредсказуемый URL-safe токен
func GenerateSessionToken() (string, error) {
	b := make([]byte, SessionTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashToken возвращает hex SHA256 токена.
// В БД хранится только хеш, сам токен остается у клиента.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
