package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/tabata/internal/dbx"
	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/storage"
)

const workoutColumns = `id, user_id, name, created_at, work_time, rest_time, sets, reps`

// CreateWorkout stores a new workout
func (s *Storage) CreateWorkout(ctx context.Context, w *models.Workout) error {
	query := `
		INSERT INTO workouts (id, user_id, name, created_at, work_time, rest_time, sets, reps)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		w.ID,
		w.UserID,
		w.Name,
		toUnix(w.CreatedAt),
		w.WorkTime,
		w.RestTime,
		w.Sets,
		w.Reps,
	)
	if err != nil {
		return wrapErr("failed to insert workout", err)
	}

	return nil
}

// GetWorkout retrieves user's workout by ID
func (s *Storage) GetWorkout(ctx context.Context, userID, workoutID string) (*models.Workout, error) {
	return getWorkout(ctx, s.db, userID, workoutID)
}

func getWorkout(ctx context.Context, q dbx.DBTX, userID, workoutID string) (*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = ? AND user_id = ?`

	w, err := scanWorkout(q.QueryRowContext(ctx, query, workoutID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrWorkoutNotFound
		}
		return nil, wrapErr("failed to get workout", err)
	}

	return w, nil
}

// ListWorkouts returns user's workouts, most recent first
func (s *Storage) ListWorkouts(ctx context.Context, userID string, limit int) ([]*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`
	args := []any{userID}

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return s.queryWorkouts(ctx, query, args...)
}

// ListWorkoutsBetween returns workouts created in [from, to), most recent first
func (s *Storage) ListWorkoutsBetween(ctx context.Context, userID string, from, to *time.Time) ([]*models.Workout, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if from != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, toUnix(*from))
	}
	if to != nil {
		conds = append(conds, "created_at < ?")
		args = append(args, toUnix(*to))
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC, rowid DESC`

	return s.queryWorkouts(ctx, query, args...)
}

func (s *Storage) queryWorkouts(ctx context.Context, query string, args ...any) ([]*models.Workout, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("failed to list workouts", err)
	}
	defer rows.Close()

	workouts := make([]*models.Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, wrapErr("failed to scan workout", err)
		}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate workouts", err)
	}

	return workouts, nil
}

// UpdateWorkout applies a partial update and returns the resulting workout
func (s *Storage) UpdateWorkout(ctx context.Context, userID, workoutID string, patch models.WorkoutPatch) (*models.Workout, error) {
	var updated *models.Workout

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if !patch.IsEmpty() {
			var sets []string
			var args []any

			if patch.Name != nil {
				sets = append(sets, "name = ?")
				args = append(args, *patch.Name)
			}
			if patch.RestTime != nil {
				sets = append(sets, "rest_time = ?")
				args = append(args, *patch.RestTime)
			}

			args = append(args, workoutID, userID)
			query := fmt.Sprintf(`UPDATE workouts SET %s WHERE id = ? AND user_id = ?`, strings.Join(sets, ", "))

			result, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return wrapErr("failed to update workout", err)
			}
			if err := checkAffected(result, storage.ErrWorkoutNotFound); err != nil {
				return err
			}
		}

		w, err := getWorkout(ctx, tx, userID, workoutID)
		if err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteWorkout deletes workout; history is removed by ON DELETE CASCADE
func (s *Storage) DeleteWorkout(ctx context.Context, userID, workoutID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ? AND user_id = ?`, workoutID, userID)
	if err != nil {
		return wrapErr("failed to delete workout", err)
	}

	return checkAffected(result, storage.ErrWorkoutNotFound)
}

// RecordSet appends a history record and updates workout aggregates atomically
func (s *Storage) RecordSet(ctx context.Context, userID string, record *models.HistoryRecord) (*models.Workout, error) {
	var updated *models.Workout

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var lastSet int
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(h.set_number), 0)
			FROM workouts w
			LEFT JOIN history h ON h.workout_id = w.id
			WHERE w.id = ? AND w.user_id = ?
			GROUP BY w.id
		`, record.WorkoutID, userID).Scan(&lastSet)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrWorkoutNotFound
			}
			return wrapErr("failed to read last set", err)
		}

		if record.SetNumber <= lastSet {
			return fmt.Errorf("%w: got %d after %d", storage.ErrSetOrder, record.SetNumber, lastSet)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO history (id, workout_id, set_number, reps, duration, completed_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			record.ID,
			record.WorkoutID,
			record.SetNumber,
			record.Reps,
			record.Duration,
			toUnix(record.CompletedAt),
		)
		if err != nil {
			return wrapErr("failed to insert history record", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE workouts
			SET work_time = work_time + ?, reps = reps + ?, sets = ?
			WHERE id = ? AND user_id = ?
		`, record.Duration, record.Reps, record.SetNumber, record.WorkoutID, userID)
		if err != nil {
			return wrapErr("failed to update workout totals", err)
		}
		if err := checkAffected(result, storage.ErrWorkoutNotFound); err != nil {
			return err
		}

		w, err := getWorkout(ctx, tx, userID, record.WorkoutID)
		if err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// GetWorkoutHistory returns per-set records ordered by set number
func (s *Storage) GetWorkoutHistory(ctx context.Context, userID, workoutID string) ([]*models.HistoryRecord, error) {
	owned, err := exists(ctx, s.db, `SELECT 1 FROM workouts WHERE id = ? AND user_id = ?`, workoutID, userID)
	if err != nil {
		return nil, wrapErr("failed to check workout", err)
	}
	if !owned {
		return nil, storage.ErrWorkoutNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, workout_id, set_number, reps, duration, completed_at
		FROM history
		WHERE workout_id = ?
		ORDER BY set_number
	`, workoutID)
	if err != nil {
		return nil, wrapErr("failed to get history", err)
	}
	defer rows.Close()

	records := make([]*models.HistoryRecord, 0)
	for rows.Next() {
		r := &models.HistoryRecord{}
		var completedAt int64
		if err := rows.Scan(&r.ID, &r.WorkoutID, &r.SetNumber, &r.Reps, &r.Duration, &completedAt); err != nil {
			return nil, wrapErr("failed to scan history record", err)
		}
		r.CompletedAt = fromUnix(completedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate history", err)
	}

	return records, nil
}

// GetUserStats returns workout count and total work time
func (s *Storage) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	stats := &models.UserStats{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(work_time), 0) FROM workouts WHERE user_id = ?`, userID,
	).Scan(&stats.TotalWorkouts, &stats.TotalDuration)
	if err != nil {
		return nil, wrapErr("failed to get user stats", err)
	}

	return stats, nil
}

func scanWorkout(row rowScanner) (*models.Workout, error) {
	w := &models.Workout{}
	var createdAt int64

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&createdAt,
		&w.WorkTime,
		&w.RestTime,
		&w.Sets,
		&w.Reps,
	)
	if err != nil {
		return nil, err
	}

	w.CreatedAt = fromUnix(createdAt)
	return w, nil
}
