package storage

import (
	"context"
	"time"

	"github.com/iudanet/tabata/internal/models"
)

// WorkoutStorage defines interface for workouts and their per-set history
// All lookups are scoped by owner: another user's workout is reported as ErrWorkoutNotFound
type WorkoutStorage interface {
	// CreateWorkout stores a new workout
	CreateWorkout(ctx context.Context, workout *models.Workout) error

	// GetWorkout retrieves workout by ID
	GetWorkout(ctx context.Context, userID, workoutID string) (*models.Workout, error)

	// ListWorkouts returns user's workouts, most recent first
	// limit <= 0 means no limit
	ListWorkouts(ctx context.Context, userID string, limit int) ([]*models.Workout, error)

	// ListWorkoutsBetween returns workouts created in [from, to), most recent first
	// nil bound means open interval
	ListWorkoutsBetween(ctx context.Context, userID string, from, to *time.Time) ([]*models.Workout, error)

	// UpdateWorkout applies a partial update and returns the resulting workout
	UpdateWorkout(ctx context.Context, userID, workoutID string, patch models.WorkoutPatch) (*models.Workout, error)

	// DeleteWorkout deletes workout and its history
	DeleteWorkout(ctx context.Context, userID, workoutID string) error

	// RecordSet appends a history record and updates workout aggregates atomically
	// Returns ErrSetOrder if record.SetNumber is not greater than the last recorded set
	RecordSet(ctx context.Context, userID string, record *models.HistoryRecord) (*models.Workout, error)

	// GetWorkoutHistory returns per-set records ordered by set number
	GetWorkoutHistory(ctx context.Context, userID, workoutID string) ([]*models.HistoryRecord, error)

	// GetUserStats returns workout count and total work time (0 when no workouts)
	GetUserStats(ctx context.Context, userID string) (*models.UserStats, error)
}
