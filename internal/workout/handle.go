package workout

import (
	"sync"

	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/timer"
)

// Handle активная тренировка: движок таймера и связанная запись Workout.
// Возвращается из StartWorkout и передается во все последующие вызовы.
// Методы Service сериализуют доступ к Handle, поэтому тики из горутины
// часов и действия пользователя можно вызывать конкурентно.
type Handle struct {
	engine   *timer.Engine
	exercise models.Exercise
	workout  models.Workout
	mu       sync.Mutex
	// удаление пустой тренировки не удалось, Stop повторит его
	cleanupPending bool
}

// Workout returns a copy of the workout row as last persisted.
func (h *Handle) Workout() models.Workout {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.workout
}

// Exercise returns the exercise parameters the workout was started with.
func (h *Handle) Exercise() models.Exercise {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exercise
}

// Snapshot returns the timer state for rendering.
func (h *Handle) Snapshot() timer.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Snapshot()
}

// Done reports whether the workout is finished or stopped.
func (h *Handle) Done() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.State().Terminal()
}
