package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
)

const exerciseColumns = `id, user_id, name, description, sets, reps, rest_time, prepare_time, created_at`

// CreateExercise stores a new exercise
func (s *Storage) CreateExercise(ctx context.Context, e *models.Exercise) error {
	query := `
		INSERT INTO exercises (id, user_id, name, description, sets, reps, rest_time, prepare_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.Name,
		e.Description,
		e.Sets,
		e.Reps,
		e.RestTime,
		e.PrepareTime,
		toUnix(e.CreatedAt),
	)
	if err != nil {
		return wrapErr("failed to insert exercise", err)
	}

	return nil
}

// GetExercise retrieves user's exercise by ID
func (s *Storage) GetExercise(ctx context.Context, userID, exerciseID string) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ? AND user_id = ?`

	e, err := scanExercise(s.db.QueryRowContext(ctx, query, exerciseID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrExerciseNotFound
		}
		return nil, wrapErr("failed to get exercise", err)
	}

	return e, nil
}

// ListExercises returns user's exercises ordered by name
func (s *Storage) ListExercises(ctx context.Context, userID string) ([]*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE user_id = ? ORDER BY name, created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrapErr("failed to list exercises", err)
	}
	defer rows.Close()

	exercises := make([]*models.Exercise, 0)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, wrapErr("failed to scan exercise", err)
		}
		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate exercises", err)
	}

	return exercises, nil
}

// UpdateExercise overwrites exercise parameters
// Частичное обновление собирается уровнем выше через models.ExercisePatch
func (s *Storage) UpdateExercise(ctx context.Context, e *models.Exercise) error {
	query := `
		UPDATE exercises
		SET name = ?, description = ?, sets = ?, reps = ?, rest_time = ?, prepare_time = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		e.Name,
		e.Description,
		e.Sets,
		e.Reps,
		e.RestTime,
		e.PrepareTime,
		e.ID,
		e.UserID,
	)
	if err != nil {
		return wrapErr("failed to update exercise", err)
	}

	return checkAffected(result, storage.ErrExerciseNotFound)
}

// DeleteExercise deletes user's exercise
func (s *Storage) DeleteExercise(ctx context.Context, userID, exerciseID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ? AND user_id = ?`, exerciseID, userID)
	if err != nil {
		return wrapErr("failed to delete exercise", err)
	}

	return checkAffected(result, storage.ErrExerciseNotFound)
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	e := &models.Exercise{}
	var createdAt int64

	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Name,
		&e.Description,
		&e.Sets,
		&e.Reps,
		&e.RestTime,
		&e.PrepareTime,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt = fromUnix(createdAt)
	return e, nil
}
