package stats

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
	"github.com/iudanet/tabata/internal/storage/sqlite"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupStore(t *testing.T) *sqlite.Storage {
	t.Helper()

	store, err := sqlite.New(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func createUser(t *testing.T, store *sqlite.Storage, name string) string {
	t.Helper()
	u := &models.User{
		ID:           uuid.New().String(),
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    monday,
		IsActive:     true,
	}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u.ID
}

// completeWorkout создает тренировку и записывает подходы с указанными длительностями
func completeWorkout(t *testing.T, store *sqlite.Storage, userID, name string, at time.Time, durations ...int) *models.Workout {
	t.Helper()
	ctx := context.Background()

	w := &models.Workout{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		RestTime:  30,
		CreatedAt: at,
	}
	require.NoError(t, store.CreateWorkout(ctx, w))

	for i, d := range durations {
		var err error
		w, err = store.RecordSet(ctx, userID, &models.HistoryRecord{
			ID:          uuid.New().String(),
			WorkoutID:   w.ID,
			SetNumber:   i + 1,
			Reps:        10,
			Duration:    d,
			CompletedAt: at.Add(time.Duration(i+1) * time.Minute),
		})
		require.NoError(t, err)
	}

	return w
}

func TestService_GetUserStats(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	userID := createUser(t, store, "alex")
	svc := NewService(store, discardLogger())

	stats, err := svc.GetUserStats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, &models.UserStats{}, stats)

	completeWorkout(t, store, userID, "Burpees", monday, 45, 38)
	completeWorkout(t, store, userID, "Squats", monday.Add(time.Hour), 60)

	stats, err = svc.GetUserStats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, &models.UserStats{TotalWorkouts: 2, TotalDuration: 143}, stats)
}

func TestService_GetWorkoutHistory(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	userID := createUser(t, store, "alex")
	otherID := createUser(t, store, "bob")
	svc := NewService(store, discardLogger(), WithHistoryLimit(2))

	first := completeWorkout(t, store, userID, "A", monday, 30)
	second := completeWorkout(t, store, userID, "B", monday.Add(time.Hour), 30)
	third := completeWorkout(t, store, userID, "C", monday.Add(2*time.Hour), 30)

	t.Run("default limit, most recent first", func(t *testing.T) {
		got, err := svc.GetWorkoutHistory(ctx, userID, HistoryFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, third.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
	})

	t.Run("explicit limit", func(t *testing.T) {
		got, err := svc.GetWorkoutHistory(ctx, userID, HistoryFilter{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("by workout id", func(t *testing.T) {
		got, err := svc.GetWorkoutHistory(ctx, userID, HistoryFilter{WorkoutID: first.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Name)
	})

	t.Run("foreign workout id", func(t *testing.T) {
		_, err := svc.GetWorkoutHistory(ctx, otherID, HistoryFilter{WorkoutID: first.ID})
		assert.ErrorIs(t, err, storage.ErrWorkoutNotFound)
	})

	t.Run("other user has no history", func(t *testing.T) {
		got, err := svc.GetWorkoutHistory(ctx, otherID, HistoryFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestService_GetWorkoutSets(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	userID := createUser(t, store, "alex")
	svc := NewService(store, discardLogger())

	w := completeWorkout(t, store, userID, "Burpees", monday, 45, 38)

	sets, err := svc.GetWorkoutSets(ctx, userID, w.ID)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, 1, sets[0].SetNumber)
	assert.Equal(t, 45, sets[0].Duration)
	assert.Equal(t, 2, sets[1].SetNumber)
	assert.Equal(t, 38, sets[1].Duration)
}

func TestService_GenerateReport(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	userID := createUser(t, store, "alex")
	svc := NewService(store, discardLogger(), WithLocation(time.UTC))

	completeWorkout(t, store, userID, "Burpees", monday, 300, 300)                  // W10
	completeWorkout(t, store, userID, "Burpees", monday.AddDate(0, 0, 2), 300, 300) // W10
	completeWorkout(t, store, userID, "Squats", monday.AddDate(0, 0, 7), 450, 450)  // W11
	completeWorkout(t, store, userID, "Plank", monday.AddDate(0, 0, 11), 900)       // W11
	completeWorkout(t, store, userID, "Plank", monday.AddDate(0, 1, 0), 900)        // за пределами периода

	from, to, err := ParseReportPeriod("2025-03-01", "2025-03-31", time.UTC)
	require.NoError(t, err)
	// апрельская тренировка 2025-04-03 не входит в период
	report, err := svc.GenerateReport(ctx, userID, from, to)
	require.NoError(t, err)

	assert.True(t, report.HasData)
	assert.Equal(t, from, report.Start)
	assert.Equal(t, to, report.End)
	assert.Equal(t, models.ReportSummary{
		TotalSessions: 4,
		TotalDuration: 3000,
		AvgDuration:   750,
		AvgPerWeek:    0.9,
	}, report.Summary)
	assert.Equal(t, [7]int{2, 0, 1, 0, 1, 0, 0}, report.DayDistribution)
	require.Len(t, report.TopWorkouts, 3)
	assert.Equal(t, models.WorkoutShare{Name: "Burpees", Count: 2, Percentage: 50}, report.TopWorkouts[0])
	assert.Equal(t, models.TrendImproving, report.Progress.Trend)
	assert.Equal(t, 50.0, report.Progress.Improvement)
}

func TestService_GenerateReport_NoData(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	userID := createUser(t, store, "alex")
	svc := NewService(store, discardLogger())

	completeWorkout(t, store, userID, "Burpees", monday, 300)

	from, to, err := ParseReportPeriod("2024-01-01", "2024-01-31", time.UTC)
	require.NoError(t, err)

	report, err := svc.GenerateReport(ctx, userID, from, to)
	require.NoError(t, err)
	assert.False(t, report.HasData)
	assert.Equal(t, []string{RecFirstWorkout}, report.Recommendations)
}

func TestService_GenerateReport_TopN(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	userID := createUser(t, store, "alex")
	svc := NewService(store, discardLogger(), WithTopN(1))

	completeWorkout(t, store, userID, "A", monday, 300)
	completeWorkout(t, store, userID, "B", monday.Add(time.Hour), 300)

	report, err := svc.GenerateReport(ctx, userID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, report.TopWorkouts, 1)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(nil, discardLogger(), WithTopN(0), WithHistoryLimit(-1), WithLocation(nil))

	assert.Equal(t, DefaultTopN, svc.topN)
	assert.Equal(t, DefaultHistoryLimit, svc.historyLimit)
	assert.Equal(t, time.Local, svc.Location())
}
