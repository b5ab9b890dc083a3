package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tabata/internal/crypto"
	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
	"github.com/iudanet/tabata/internal/storage/sqlite"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupManager(t *testing.T) (*Manager, *sqlite.Storage, *fakeClock, string) {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := &fakeClock{t: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "alex",
		Email:        "a@x.com",
		PasswordHash: "hash",
		CreatedAt:    clock.Now(),
		IsActive:     true,
	}
	require.NoError(t, store.CreateUser(ctx, user))

	return NewManager(store, discardLogger(), WithClock(clock.Now)), store, clock, user.ID
}

func TestManager_CreateAndValidate(t *testing.T) {
	ctx := context.Background()
	m, _, clock, userID := setupManager(t)

	token, err := m.CreateSession(ctx, userID, false)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(token), 43, "32 байта в base64 без паддинга")

	user := m.ValidateSession(ctx, token)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.ID)

	clock.Advance(14 * time.Minute)
	assert.NotNil(t, m.ValidateSession(ctx, token))

	clock.Advance(2 * time.Minute)
	assert.Nil(t, m.ValidateSession(ctx, token), "через 16 минут сессия истекла")
}

func TestManager_RememberMe(t *testing.T) {
	ctx := context.Background()
	m, _, clock, userID := setupManager(t)

	token, err := m.CreateSession(ctx, userID, true)
	require.NoError(t, err)

	clock.Advance(29 * 24 * time.Hour)
	assert.NotNil(t, m.ValidateSession(ctx, token))

	clock.Advance(25 * time.Hour)
	assert.Nil(t, m.ValidateSession(ctx, token))
}

func TestManager_ExpiryInvariant(t *testing.T) {
	ctx := context.Background()

	for _, remember := range []bool{false, true} {
		m, _, clock, userID := setupManager(t)
		start := clock.Now()

		token, err := m.CreateSession(ctx, userID, remember)
		require.NoError(t, err)

		ttl := DefaultShortTTL
		if remember {
			ttl = DefaultRememberTTL
		}

		for _, offset := range []time.Duration{ttl, ttl + time.Nanosecond, ttl + time.Hour, 2 * ttl} {
			clock.t = start.Add(offset)
			assert.Nil(t, m.ValidateSession(ctx, token), "remember=%v offset=%s", remember, offset)
		}
	}
}

func TestManager_CreatePrunesExpired(t *testing.T) {
	ctx := context.Background()
	m, store, clock, userID := setupManager(t)

	for range 5 {
		_, err := m.CreateSession(ctx, userID, false)
		require.NoError(t, err)

		clock.Advance(20 * time.Minute)

		_, err = m.CreateSession(ctx, userID, false)
		require.NoError(t, err)

		n, err := store.CountExpiredSessions(ctx, userID, clock.Now())
		require.NoError(t, err)
		assert.Equal(t, 0, n, "после создания сессии истекших не остается")
	}
}

func TestManager_MultipleValidSessions(t *testing.T) {
	ctx := context.Background()
	m, _, _, userID := setupManager(t)

	first, err := m.CreateSession(ctx, userID, false)
	require.NoError(t, err)
	second, err := m.CreateSession(ctx, userID, true)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotNil(t, m.ValidateSession(ctx, first), "действующие сессии не удаляются")
	assert.NotNil(t, m.ValidateSession(ctx, second))
}

func TestManager_ValidateRejects(t *testing.T) {
	ctx := context.Background()
	m, store, _, userID := setupManager(t)

	token, err := m.CreateSession(ctx, userID, true)
	require.NoError(t, err)

	assert.Nil(t, m.ValidateSession(ctx, ""))
	assert.Nil(t, m.ValidateSession(ctx, "unknown-token"))

	require.NoError(t, store.SetActive(ctx, userID, false))
	assert.Nil(t, m.ValidateSession(ctx, token), "отключенный пользователь")
}

func TestManager_DeleteSession(t *testing.T) {
	ctx := context.Background()
	m, _, _, userID := setupManager(t)

	token, err := m.CreateSession(ctx, userID, false)
	require.NoError(t, err)

	require.NoError(t, m.DeleteSession(ctx, token))
	assert.Nil(t, m.ValidateSession(ctx, token))

	require.NoError(t, m.DeleteSession(ctx, token), "повторное удаление не ошибка")
	require.NoError(t, m.DeleteSession(ctx, ""))
}

func TestManager_DeleteAllSessionsForUser(t *testing.T) {
	ctx := context.Background()
	m, _, _, userID := setupManager(t)

	a, err := m.CreateSession(ctx, userID, false)
	require.NoError(t, err)
	b, err := m.CreateSession(ctx, userID, true)
	require.NoError(t, err)

	require.NoError(t, m.DeleteAllSessionsForUser(ctx, userID))
	assert.Nil(t, m.ValidateSession(ctx, a))
	assert.Nil(t, m.ValidateSession(ctx, b))

	require.NoError(t, m.DeleteAllSessionsForUser(ctx, userID))
}

func TestManager_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	m, _, clock, userID := setupManager(t)

	_, err := m.CreateSession(ctx, userID, false)
	require.NoError(t, err)
	long, err := m.CreateSession(ctx, userID, true)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	n, err := m.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotNil(t, m.ValidateSession(ctx, long))
}

func TestManager_StoresOnlyHash(t *testing.T) {
	ctx := context.Background()
	m, store, _, userID := setupManager(t)

	token, err := m.CreateSession(ctx, userID, false)
	require.NoError(t, err)

	var stored string
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT session_token FROM user_sessions`).Scan(&stored))
	assert.NotEqual(t, token, stored)
	assert.Equal(t, crypto.HashToken(token), stored)
}

func TestManager_WithTTL(t *testing.T) {
	ctx := context.Background()
	m, _, clock, userID := setupManager(t)
	WithTTL(time.Minute, 0)(m)
	assert.Equal(t, DefaultRememberTTL, m.rememberTTL, "нулевое значение не меняет TTL")

	token, err := m.CreateSession(ctx, userID, false)
	require.NoError(t, err)

	clock.Advance(61 * time.Second)
	assert.Nil(t, m.ValidateSession(ctx, token))
}

// failingSessions эмулирует сбой хранилища
type failingSessions struct {
	storage.SessionStorage
	err error
}

func (f failingSessions) CreateSession(context.Context, *models.Session, time.Time) (int, error) {
	return 0, f.err
}

func (f failingSessions) GetSessionUser(context.Context, string, time.Time) (*models.User, error) {
	return nil, f.err
}

func (f failingSessions) DeleteSession(context.Context, string) error {
	return f.err
}

func TestManager_StorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.Join(storage.ErrStorage, errors.New("disk I/O error"))
	m := NewManager(failingSessions{err: boom}, discardLogger())

	_, err := m.CreateSession(ctx, "u1", false)
	assert.ErrorIs(t, err, storage.ErrStorage)

	assert.Nil(t, m.ValidateSession(ctx, "token"), "ошибка хранилища при проверке дает nil")

	assert.ErrorIs(t, m.DeleteSession(ctx, "token"), storage.ErrStorage)
}

func TestManager_TokenGenerationError(t *testing.T) {
	m := NewManager(failingSessions{}, discardLogger())
	m.newToken = func() (string, error) { return "", errors.New("no entropy") }

	_, err := m.CreateSession(context.Background(), "u1", false)
	assert.Error(t, err)
}

func TestTokenPrefix(t *testing.T) {
	assert.Equal(t, "***", tokenPrefix("abc"))
	assert.Equal(t, "abcdef...", tokenPrefix("abcdefghij"))
}
