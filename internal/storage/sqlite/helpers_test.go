package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tabata/internal/models"
)

// baseTime фиксированное время для детерминированных тестов
var baseTime = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC) // понедельник

func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, MemoryPath)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
	}

	return s, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage) string {
	t.Helper()
	userID := uuid.New().String()
	user := &models.User{
		ID:           userID,
		Username:     "user_" + userID[:8],
		Email:        userID[:8] + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    baseTime,
		IsActive:     true,
	}

	require.NoError(t, s.CreateUser(ctx, user))

	return userID
}

func createTestWorkout(t *testing.T, ctx context.Context, s *Storage, userID, name string, createdAt time.Time) *models.Workout {
	t.Helper()
	w := &models.Workout{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: createdAt,
		RestTime:  30,
	}

	require.NoError(t, s.CreateWorkout(ctx, w))

	return w
}

func timePtr(t time.Time) *time.Time {
	return &t
}
