package models

import "time"

// Exercise шаблон упражнения пользователя
type Exercise struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Sets        int       `json:"sets"`         // количество подходов
	Reps        int       `json:"reps"`         // целевое количество повторений
	RestTime    int       `json:"rest_time"`    // отдых между подходами, сек
	PrepareTime int       `json:"prepare_time"` // порог предупреждения перед концом отдыха, сек
}

// ExercisePatch частичное обновление упражнения. nil = поле не меняется
type ExercisePatch struct {
	Name        *string
	Description *string
	Sets        *int
	Reps        *int
	RestTime    *int
	PrepareTime *int
}

// Apply returns a copy of e with the patch applied.
func (p ExercisePatch) Apply(e Exercise) Exercise {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Sets != nil {
		e.Sets = *p.Sets
	}
	if p.Reps != nil {
		e.Reps = *p.Reps
	}
	if p.RestTime != nil {
		e.RestTime = *p.RestTime
	}
	if p.PrepareTime != nil {
		e.PrepareTime = *p.PrepareTime
	}
	return e
}

// Workout выполнение (текущее или завершенное) упражнения
// WorkTime всегда равен сумме Duration всех HistoryRecord этой тренировки
type Workout struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`      // копия имени упражнения на момент старта
	WorkTime  int       `json:"work_time"` // сумма длительностей выполненных подходов, сек
	RestTime  int       `json:"rest_time"` // копия параметра упражнения
	Sets      int       `json:"sets"`      // выполнено подходов
	Reps      int       `json:"reps"`      // сумма повторений
}

// WorkoutPatch частичное обновление тренировки. nil = поле не меняется
// Агрегаты (work_time, sets, reps) меняются только через запись подхода
type WorkoutPatch struct {
	Name     *string
	RestTime *int
}

// IsEmpty reports whether the patch changes nothing.
func (p WorkoutPatch) IsEmpty() bool {
	return p.Name == nil && p.RestTime == nil
}

// HistoryRecord результат одного выполненного подхода. Записи не изменяются
type HistoryRecord struct {
	CompletedAt time.Time `json:"completed_at"`
	ID          string    `json:"id"`
	WorkoutID   string    `json:"workout_id"`
	SetNumber   int       `json:"set_number"`
	Reps        int       `json:"reps"`
	Duration    int       `json:"duration"` // сек
}
