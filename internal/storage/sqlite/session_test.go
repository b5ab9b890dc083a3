package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
)

func newSession(userID, hash string, createdAt time.Time, expiresAt *time.Time) *models.Session {
	return &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: hash,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}
}

func TestSessionStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	expires := baseTime.Add(15 * time.Minute)

	pruned, err := s.CreateSession(ctx, newSession(userID, "hash-1", baseTime, &expires), baseTime)
	require.NoError(t, err)
	assert.Equal(t, 0, pruned)

	tests := []struct {
		wantErr error
		now     time.Time
		name    string
		hash    string
	}{
		{name: "valid before expiry", hash: "hash-1", now: baseTime.Add(14 * time.Minute)},
		{name: "invalid exactly at expiry", hash: "hash-1", now: expires, wantErr: storage.ErrSessionNotFound},
		{name: "invalid after expiry", hash: "hash-1", now: baseTime.Add(16 * time.Minute), wantErr: storage.ErrSessionNotFound},
		{name: "unknown token", hash: "nope", now: baseTime, wantErr: storage.ErrSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.GetSessionUser(ctx, tt.hash, tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, user.ID)
		})
	}
}

func TestSessionStorage_NullExpiryIsValid(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	_, err := s.CreateSession(ctx, newSession(userID, "forever", baseTime, nil), baseTime)
	require.NoError(t, err)

	user, err := s.GetSessionUser(ctx, "forever", baseTime.Add(365*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestSessionStorage_InactiveUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	expires := baseTime.Add(time.Hour)
	_, err := s.CreateSession(ctx, newSession(userID, "h", baseTime, &expires), baseTime)
	require.NoError(t, err)

	require.NoError(t, s.SetActive(ctx, userID, false))

	_, err = s.GetSessionUser(ctx, "h", baseTime)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestSessionStorage_CreatePrunesStale(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	otherID := createTestUser(t, ctx, s)

	expired := baseTime.Add(-time.Minute)
	live := baseTime.Add(time.Hour)

	_, err := s.CreateSession(ctx, newSession(userID, "expired", baseTime.Add(-time.Hour), &expired), baseTime.Add(-time.Hour))
	require.NoError(t, err)
	_, err = s.CreateSession(ctx, newSession(userID, "live", baseTime.Add(-time.Hour), &live), baseTime.Add(-time.Hour))
	require.NoError(t, err)
	_, err = s.CreateSession(ctx, newSession(otherID, "other-expired", baseTime.Add(-time.Hour), &expired), baseTime.Add(-time.Hour))
	require.NoError(t, err)

	// сессия без срока создается напрямую, как устаревшая запись
	_, err = s.DB().ExecContext(ctx,
		`INSERT INTO user_sessions (id, user_id, session_token, created_at, expires_at) VALUES (?, ?, ?, ?, NULL)`,
		uuid.New().String(), userID, "null-expiry", toUnix(baseTime.Add(-time.Hour)))
	require.NoError(t, err)

	count, err := s.CountExpiredSessions(ctx, userID, baseTime)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	next := baseTime.Add(15 * time.Minute)
	pruned, err := s.CreateSession(ctx, newSession(userID, "new", baseTime, &next), baseTime)
	require.NoError(t, err)
	assert.Equal(t, 2, pruned, "удаляются истекшая и бессрочная сессии")

	count, err = s.CountExpiredSessions(ctx, userID, baseTime)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = s.GetSessionUser(ctx, "live", baseTime)
	assert.NoError(t, err, "действующая сессия не удаляется")

	otherCount, err := s.CountExpiredSessions(ctx, otherID, baseTime)
	require.NoError(t, err)
	assert.Equal(t, 1, otherCount, "чужие сессии не затрагиваются")
}

func TestSessionStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	expires := baseTime.Add(time.Hour)

	for _, h := range []string{"a", "b", "c"} {
		_, err := s.CreateSession(ctx, newSession(userID, h, baseTime, &expires), baseTime)
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteSession(ctx, "a"))
	require.NoError(t, s.DeleteSession(ctx, "a"), "повторное удаление не ошибка")
	require.NoError(t, s.DeleteSession(ctx, "unknown"))

	_, err := s.GetSessionUser(ctx, "a", baseTime)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	n, err := s.DeleteUserSessions(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.DeleteUserSessions(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSessionStorage_DeleteExpiredSessions(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	past := baseTime.Add(-time.Minute)
	future := baseTime.Add(time.Minute)

	_, err := s.CreateSession(ctx, newSession(userID, "past", baseTime.Add(-time.Hour), &past), baseTime.Add(-time.Hour))
	require.NoError(t, err)
	_, err = s.CreateSession(ctx, newSession(userID, "future", baseTime.Add(-time.Hour), &future), baseTime.Add(-time.Hour))
	require.NoError(t, err)

	n, err := s.DeleteExpiredSessions(ctx, baseTime)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.GetSessionUser(ctx, "future", baseTime)
	assert.NoError(t, err)
}

func TestSessionStorage_CascadeOnUserDelete(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	_, err := s.CreateSession(ctx, newSession(userID, "h", baseTime, nil), baseTime)
	require.NoError(t, err)

	_, err = s.DB().ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	require.NoError(t, err)

	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM user_sessions`).Scan(&n))
	assert.Equal(t, 0, n)
}
