package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id по умолчанию
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 3
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 2
	// Argon2KeyLen - длина выходного ключа в байтах
	Argon2KeyLen = 32
	// SaltSize - размер соли в байтах
	SaltSize = 16
)

// ErrInvalidHash indicates that a stored password hash can not be parsed
var ErrInvalidHash = errors.New("invalid password hash format")

// PasswordHasher хеширует пароли через Argon2id со случайной солью.
// Результат хранится в PHC формате, поэтому параметры можно менять
// без потери возможности проверить старые хеши.
type PasswordHasher struct {
	Memory     uint32 // объем памяти в KiB
	Time       uint32 // количество итераций
	SaltLength uint32
	KeyLength  uint32
	Threads    uint8
}

// NewPasswordHasher создает hasher с параметрами по умолчанию
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		Memory:     Argon2Memory,
		Time:       Argon2Time,
		Threads:    Argon2Threads,
		SaltLength: SaltSize,
		KeyLength:  Argon2KeyLen,
	}
}

// GenerateSalt генерирует криптографически случайную соль указанного размера
func GenerateSalt(size uint32) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Hash возвращает строку вида $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	salt, err := GenerateSalt(h.SaltLength)
	if err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, h.Time, h.Memory, h.Threads, h.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.Memory,
		h.Time,
		h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify проверяет пароль против сохраненного хеша.
// Параметры берутся из самого хеша, а не из h.
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, params.KeyLength)

	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}

func decodeHash(encodedHash string) (*PasswordHasher, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: version: %w", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("%w: incompatible version %d", ErrInvalidHash, version)
	}

	params := &PasswordHasher{}
	var threads int
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &threads); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: parameters: %w", ErrInvalidHash, err)
	}
	if params.Memory == 0 || params.Time == 0 || threads < 1 || threads > 255 {
		return nil, nil, nil, fmt.Errorf("%w: parameters out of range", ErrInvalidHash)
	}
	params.Threads = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: salt: %w", ErrInvalidHash, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: key: %w", ErrInvalidHash, err)
	}

	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}
