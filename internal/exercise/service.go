// Package exercise управляет шаблонами упражнений пользователя.
package exercise

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
	"github.com/iudanet/tabata/internal/validation"
)

// Service CRUD упражнений с валидацией параметров
type Service struct {
	exercises storage.ExerciseStorage
	logger    *slog.Logger
	now       func() time.Time
}

// NewService создает сервис упражнений
func NewService(exercises storage.ExerciseStorage, logger *slog.Logger) *Service {
	return &Service{
		exercises: exercises,
		logger:    logger,
		now:       time.Now,
	}
}

// Create проверяет и сохраняет новое упражнение пользователя
func (s *Service) Create(ctx context.Context, userID string, e models.Exercise) (*models.Exercise, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Description = strings.TrimSpace(e.Description)

	if err := validation.ValidateExercise(e); err != nil {
		return nil, err
	}

	e.ID = uuid.New().String()
	e.UserID = userID
	e.CreatedAt = s.now()

	if err := s.exercises.CreateExercise(ctx, &e); err != nil {
		return nil, fmt.Errorf("failed to create exercise: %w", err)
	}

	s.logger.InfoContext(ctx, "exercise created",
		slog.String("user_id", userID),
		slog.String("exercise_id", e.ID),
		slog.String("name", e.Name),
	)

	return &e, nil
}

// Get возвращает упражнение пользователя
func (s *Service) Get(ctx context.Context, userID, exerciseID string) (*models.Exercise, error) {
	return s.exercises.GetExercise(ctx, userID, exerciseID)
}

// List возвращает все упражнения пользователя
func (s *Service) List(ctx context.Context, userID string) ([]*models.Exercise, error) {
	return s.exercises.ListExercises(ctx, userID)
}

// Update применяет частичное обновление. Валидация выполняется по итоговым значениям.
func (s *Service) Update(ctx context.Context, userID, exerciseID string, patch models.ExercisePatch) (*models.Exercise, error) {
	current, err := s.exercises.GetExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*current)
	updated.Name = strings.TrimSpace(updated.Name)
	updated.Description = strings.TrimSpace(updated.Description)

	if err := validation.ValidateExercise(updated); err != nil {
		return nil, err
	}

	if err := s.exercises.UpdateExercise(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update exercise: %w", err)
	}

	return &updated, nil
}

// Delete удаляет упражнение. Уже созданные тренировки не затрагиваются.
func (s *Service) Delete(ctx context.Context, userID, exerciseID string) error {
	if err := s.exercises.DeleteExercise(ctx, userID, exerciseID); err != nil {
		return fmt.Errorf("failed to delete exercise: %w", err)
	}

	s.logger.InfoContext(ctx, "exercise deleted",
		slog.String("user_id", userID),
		slog.String("exercise_id", exerciseID),
	)

	return nil
}
