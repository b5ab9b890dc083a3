package models

import "time"

// UserStats суммарная статистика пользователя
type UserStats struct {
	TotalWorkouts int `json:"total_workouts"`
	TotalDuration int `json:"total_duration"` // сек
}

// Trend направление прогресса
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// ReportSummary агрегаты отчета
type ReportSummary struct {
	TotalSessions int     `json:"total_sessions"`
	TotalDuration int     `json:"total_duration"`
	AvgDuration   float64 `json:"avg_duration"`
	AvgPerWeek    float64 `json:"avg_per_week"`
}

// WorkoutShare место тренировки в топе по частоте
type WorkoutShare struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Progress динамика длительности тренировок по неделям
type Progress struct {
	Trend       Trend   `json:"trend"`
	Improvement float64 `json:"improvement"` // %, последняя неделя против первой
	Consistency float64 `json:"consistency"` // 0..100
}

// Report отчет по тренировкам за период
// HasData == false означает, что за период нет тренировок; это не ошибка
type Report struct {
	Start           *time.Time     `json:"start,omitempty"`
	End             *time.Time     `json:"end,omitempty"`
	TopWorkouts     []WorkoutShare `json:"top_workouts"`
	Recommendations []string       `json:"recommendations"`
	Summary         ReportSummary  `json:"summary"`
	Progress        Progress       `json:"progress"`
	DayDistribution [7]int         `json:"day_distribution"` // 0 = понедельник
	HasData         bool           `json:"has_data"`
}

// DatabaseInfo сведения о локальной базе данных
type DatabaseInfo struct {
	TableCounts   map[string]int `json:"table_counts"`
	Path          string         `json:"path"`
	SQLiteVersion string         `json:"sqlite_version"`
	SizeBytes     int64          `json:"size_bytes"`
	Exists        bool           `json:"exists"`
}
