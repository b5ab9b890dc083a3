package stats

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/iudanet/tabata/internal/models"
)

// weeksPerMonth среднее число недель в месяце для оценки частоты
const weeksPerMonth = 4.33

// trendThreshold изменение средней длительности в процентах, после которого тренд не stable
const trendThreshold = 5.0

// Рекомендации по истории тренировок
const (
	RecFirstWorkout = "Start your first workout!"
	RecMoreOften    = "Increase training frequency to 3-4 times a week"
	RecLonger       = "Try to make your workouts longer"
	RecSplitLong    = "Consider splitting long workouts into shorter sessions"
	RecMoreVariety  = "Add some variety to your workouts"
	RecGreatStreak  = "Great consistency! Keep it up!"
)

// Пороговые значения рекомендаций
const (
	minSessionsForFrequency = 4
	minAvgDuration          = 300  // сек
	maxAvgDuration          = 1800 // сек
	streakSessions          = 8
)

// BuildReport агрегирует тренировки периода.
// Пустой список дает отчет с HasData == false.
func BuildReport(workouts []*models.Workout, topN int, loc *time.Location) models.Report {
	report := models.Report{
		TopWorkouts:     []models.WorkoutShare{},
		Recommendations: Recommendations(workouts),
		Progress:        CalculateProgress(workouts, loc),
	}
	if len(workouts) == 0 {
		return report
	}
	report.HasData = true

	total := 0
	for _, w := range workouts {
		total += w.WorkTime
		day := (int(w.CreatedAt.In(loc).Weekday()) + 6) % 7 // 0 = понедельник
		report.DayDistribution[day]++
	}

	n := len(workouts)
	report.Summary = models.ReportSummary{
		TotalSessions: n,
		TotalDuration: total,
		AvgDuration:   round1(float64(total) / float64(n)),
		AvgPerWeek:    round1(float64(n) / weeksPerMonth),
	}
	report.TopWorkouts = TopWorkouts(workouts, topN)

	return report
}

// TopWorkouts возвращает topN самых частых тренировок по имени с долей в процентах.
// При равной частоте порядок по имени.
func TopWorkouts(workouts []*models.Workout, topN int) []models.WorkoutShare {
	if len(workouts) == 0 || topN <= 0 {
		return []models.WorkoutShare{}
	}

	counts := make(map[string]int)
	for _, w := range workouts {
		counts[w.Name]++
	}

	shares := make([]models.WorkoutShare, 0, len(counts))
	for name, count := range counts {
		shares = append(shares, models.WorkoutShare{
			Name:       name,
			Count:      count,
			Percentage: round1(float64(count) / float64(len(workouts)) * 100),
		})
	}

	slices.SortFunc(shares, func(a, b models.WorkoutShare) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if len(shares) > topN {
		shares = shares[:topN]
	}
	return shares
}

// Recommendations формирует советы по частоте, длительности и разнообразию
func Recommendations(workouts []*models.Workout) []string {
	if len(workouts) == 0 {
		return []string{RecFirstWorkout}
	}

	recs := []string{}

	if len(workouts) < minSessionsForFrequency {
		recs = append(recs, RecMoreOften)
	}

	total := 0
	names := make(map[string]struct{})
	for _, w := range workouts {
		total += w.WorkTime
		names[w.Name] = struct{}{}
	}

	avg := float64(total) / float64(len(workouts))
	switch {
	case avg < minAvgDuration:
		recs = append(recs, RecLonger)
	case avg > maxAvgDuration:
		recs = append(recs, RecSplitLong)
	}

	if len(names) == 1 {
		recs = append(recs, RecMoreVariety)
	}

	if len(workouts) >= streakSessions {
		recs = append(recs, RecGreatStreak)
	}

	return recs
}

type isoWeek struct {
	year, week int
}

// CalculateProgress сравнивает среднюю длительность первой и последней ISO-недели
// и оценивает стабильность длительности тренировок
func CalculateProgress(workouts []*models.Workout, loc *time.Location) models.Progress {
	progress := models.Progress{Trend: models.TrendStable}
	if len(workouts) == 0 {
		return progress
	}

	weekly := make(map[isoWeek][]int)
	durations := make([]float64, 0, len(workouts))
	for _, w := range workouts {
		y, wk := w.CreatedAt.In(loc).ISOWeek()
		key := isoWeek{year: y, week: wk}
		weekly[key] = append(weekly[key], w.WorkTime)
		durations = append(durations, float64(w.WorkTime))
	}

	if len(weekly) >= 2 {
		weeks := make([]isoWeek, 0, len(weekly))
		for k := range weekly {
			weeks = append(weeks, k)
		}
		slices.SortFunc(weeks, func(a, b isoWeek) int {
			if c := cmp.Compare(a.year, b.year); c != 0 {
				return c
			}
			return cmp.Compare(a.week, b.week)
		})

		first := mean(weekly[weeks[0]])
		last := mean(weekly[weeks[len(weeks)-1]])

		if first > 0 {
			progress.Improvement = round1((last - first) / first * 100)
		}

		switch {
		case progress.Improvement > trendThreshold:
			progress.Trend = models.TrendImproving
		case progress.Improvement < -trendThreshold:
			progress.Trend = models.TrendDeclining
		}
	}

	if len(durations) > 1 {
		var sum float64
		for _, d := range durations {
			sum += d
		}
		avg := sum / float64(len(durations))

		var variance float64
		for _, d := range durations {
			variance += (d - avg) * (d - avg)
		}
		variance /= float64(len(durations))

		if avg > 0 {
			progress.Consistency = round1(math.Max(0, 100-variance/avg*100))
		}
	}

	return progress
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
