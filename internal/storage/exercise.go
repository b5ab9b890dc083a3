package storage

import (
	"context"

	"github.com/iudanet/tabata/internal/models"
)

// ExerciseStorage defines interface for exercise templates
// All lookups are scoped by owner: another user's exercise is reported as ErrExerciseNotFound
type ExerciseStorage interface {
	CreateExercise(ctx context.Context, exercise *models.Exercise) error
	GetExercise(ctx context.Context, userID, exerciseID string) (*models.Exercise, error)
	ListExercises(ctx context.Context, userID string) ([]*models.Exercise, error)
	UpdateExercise(ctx context.Context, exercise *models.Exercise) error
	DeleteExercise(ctx context.Context, userID, exerciseID string) error
}
