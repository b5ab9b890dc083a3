// Package stats считает статистику и отчеты по истории тренировок.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
)

// Значения по умолчанию
const (
	DefaultTopN         = 3
	DefaultHistoryLimit = 50
)

// HistoryFilter параметры выборки истории
type HistoryFilter struct {
	WorkoutID string // если задан, возвращается только эта тренировка
	Limit     int    // <= 0 означает лимит по умолчанию
}

// Service агрегирует данные о тренировках пользователя
type Service struct {
	workouts     storage.WorkoutStorage
	logger       *slog.Logger
	loc          *time.Location
	topN         int
	historyLimit int
}

// Option настраивает Service
type Option func(*Service)

// WithTopN задает размер топа тренировок в отчете
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithHistoryLimit задает лимит истории по умолчанию
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithLocation задает часовой пояс для дней недели и недель
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewService создает сервис статистики
func NewService(workouts storage.WorkoutStorage, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		workouts:     workouts,
		logger:       logger,
		loc:          time.Local,
		topN:         DefaultTopN,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the time zone used for calendar grouping.
func (s *Service) Location() *time.Location {
	return s.loc
}

// GetUserStats возвращает количество тренировок и суммарное время.
// Для пользователя без тренировок это нули, а не ошибка.
func (s *Service) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	stats, err := s.workouts.GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	return stats, nil
}

// GetWorkoutHistory возвращает тренировки пользователя, начиная с последних
func (s *Service) GetWorkoutHistory(ctx context.Context, userID string, f HistoryFilter) ([]*models.Workout, error) {
	if f.WorkoutID != "" {
		w, err := s.workouts.GetWorkout(ctx, userID, f.WorkoutID)
		if err != nil {
			return nil, err
		}
		return []*models.Workout{w}, nil
	}

	limit := f.Limit
	if limit <= 0 {
		limit = s.historyLimit
	}

	workouts, err := s.workouts.ListWorkouts(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout history: %w", err)
	}
	return workouts, nil
}

// GetWorkoutSets возвращает результаты подходов тренировки
func (s *Service) GetWorkoutSets(ctx context.Context, userID, workoutID string) ([]*models.HistoryRecord, error) {
	return s.workouts.GetWorkoutHistory(ctx, userID, workoutID)
}

// GenerateReport строит отчет по тренировкам, созданным в [start, end).
// Отсутствие данных за период не ошибка: Report.HasData == false.
func (s *Service) GenerateReport(ctx context.Context, userID string, start, end *time.Time) (*models.Report, error) {
	workouts, err := s.workouts.ListWorkoutsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load workouts for report: %w", err)
	}

	report := BuildReport(workouts, s.topN, s.loc)
	report.Start = start
	report.End = end

	s.logger.DebugContext(ctx, "report generated",
		slog.String("user_id", userID),
		slog.Int("sessions", report.Summary.TotalSessions),
		slog.Bool("has_data", report.HasData),
	)

	return &report, nil
}
