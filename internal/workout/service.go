// Package workout проводит пользователя через тренировку: создает запись
// Workout, продвигает таймер и сохраняет результат каждого подхода.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
	"github.com/iudanet/tabata/internal/timer"
	"github.com/iudanet/tabata/internal/validation"
)

// ErrNegativeReps количество повторений не может быть отрицательным
var ErrNegativeReps = errors.New("reps cannot be negative")

// Service запускает тренировки и управляет их записями
type Service struct {
	workouts         storage.WorkoutStorage
	logger           *slog.Logger
	now              func() time.Time
	initialCountdown int
}

// Option настраивает Service
type Option func(*Service)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithInitialCountdown задает стартовый отсчет перед первым подходом
func WithInitialCountdown(d time.Duration) Option {
	return func(s *Service) { s.initialCountdown = int(d / time.Second) }
}

// NewService создает сервис тренировок
func NewService(workouts storage.WorkoutStorage, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		workouts:         workouts,
		logger:           logger,
		now:              time.Now,
		initialCountdown: timer.DefaultInitialCountdown,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) params(e *models.Exercise) timer.Params {
	return timer.Params{
		TotalSets:        e.Sets,
		InitialCountdown: s.initialCountdown,
		RestTime:         e.RestTime,
		WarnThreshold:    e.PrepareTime,
	}
}

// StartWorkout создает запись Workout по упражнению и запускает таймер
func (s *Service) StartWorkout(ctx context.Context, userID string, e *models.Exercise) (*Handle, []timer.Event, error) {
	engine, err := timer.NewEngine(s.params(e))
	if err != nil {
		return nil, nil, err
	}

	w := models.Workout{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      e.Name,
		CreatedAt: s.now(),
		RestTime:  e.RestTime,
	}

	if err := s.workouts.CreateWorkout(ctx, &w); err != nil {
		return nil, nil, fmt.Errorf("failed to create workout: %w", err)
	}

	events, _ := engine.Start()

	s.logger.InfoContext(ctx, "workout started",
		slog.String("user_id", userID),
		slog.String("workout_id", w.ID),
		slog.String("name", w.Name),
		slog.Int("sets", e.Sets),
	)

	return &Handle{engine: engine, exercise: *e, workout: w}, events, nil
}

// Tick продвигает таймер на одну секунду. Вне активных фаз возвращает nil.
func (s *Service) Tick(h *Handle) []timer.Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	events, _ := h.engine.Tick()
	return events
}

// ConfirmSet сохраняет результат текущего подхода и переводит таймер дальше.
// Вне ожидания подтверждения вызов игнорируется (nil, nil).
// При ошибке сохранения состояние таймера не меняется, и вызов можно повторить.
func (s *Service) ConfirmSet(ctx context.Context, h *Handle, reps int) ([]timer.Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	pending, ok := h.engine.PendingSet()
	if !ok {
		return nil, nil
	}

	if reps < 0 {
		return nil, &validation.Error{Problems: []string{ErrNegativeReps.Error()}}
	}

	record := &models.HistoryRecord{
		ID:          uuid.New().String(),
		WorkoutID:   h.workout.ID,
		SetNumber:   pending.SetNumber,
		Reps:        reps,
		Duration:    pending.Duration,
		CompletedAt: s.now(),
	}

	updated, err := s.workouts.RecordSet(ctx, h.workout.UserID, record)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save set result",
			slog.String("workout_id", h.workout.ID),
			slog.Int("set", pending.SetNumber),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to save set %d: %w", pending.SetNumber, err)
	}
	h.workout = *updated

	events, _ := h.engine.ConfirmSet()

	s.logger.InfoContext(ctx, "set completed",
		slog.String("workout_id", h.workout.ID),
		slog.Int("set", pending.SetNumber),
		slog.Int("reps", reps),
		slog.Int("duration", pending.Duration),
		slog.String("state", h.engine.State().String()),
	)

	return events, nil
}

// Stop немедленно останавливает тренировку.
// Тренировка без единой секунды работы удаляется; если удаление не удалось,
// повторный Stop повторяет его.
func (s *Service) Stop(ctx context.Context, h *Handle) ([]timer.Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	events, ok := h.engine.Stop()
	if !ok && !h.cleanupPending {
		return nil, nil
	}

	if h.workout.WorkTime == 0 {
		if err := s.workouts.DeleteWorkout(ctx, h.workout.UserID, h.workout.ID); err != nil &&
			!errors.Is(err, storage.ErrWorkoutNotFound) {
			h.cleanupPending = true
			return events, fmt.Errorf("failed to delete abandoned workout: %w", err)
		}
		h.cleanupPending = false

		s.logger.InfoContext(ctx, "abandoned workout deleted", slog.String("workout_id", h.workout.ID))
		return events, nil
	}

	s.logger.InfoContext(ctx, "workout stopped",
		slog.String("workout_id", h.workout.ID),
		slog.Int("sets", h.workout.Sets),
		slog.Int("work_time", h.workout.WorkTime),
	)

	return events, nil
}

// EstimateDuration оценивает длительность тренировки по упражнению в секундах
func (s *Service) EstimateDuration(e *models.Exercise, avgSetSeconds int) int {
	return timer.EstimateDuration(s.params(e), avgSetSeconds)
}

// Get возвращает тренировку пользователя
func (s *Service) Get(ctx context.Context, userID, workoutID string) (*models.Workout, error) {
	return s.workouts.GetWorkout(ctx, userID, workoutID)
}

// Update частично обновляет тренировку (имя, отдых)
func (s *Service) Update(ctx context.Context, userID, workoutID string, patch models.WorkoutPatch) (*models.Workout, error) {
	var problems []string
	if patch.Name != nil && *patch.Name == "" {
		problems = append(problems, "name is required")
	}
	if patch.RestTime != nil && *patch.RestTime < 0 {
		problems = append(problems, "rest time cannot be negative")
	}
	if len(problems) > 0 {
		return nil, &validation.Error{Problems: problems}
	}

	return s.workouts.UpdateWorkout(ctx, userID, workoutID, patch)
}

// Delete удаляет тренировку вместе с историей подходов
func (s *Service) Delete(ctx context.Context, userID, workoutID string) error {
	if err := s.workouts.DeleteWorkout(ctx, userID, workoutID); err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil
}
