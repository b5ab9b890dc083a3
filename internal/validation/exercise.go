package validation

import (
	"fmt"
	"strings"

	"github.com/iudanet/tabata/internal/models"
)

// Допустимые диапазоны параметров упражнения
const (
	MinRestTime = 1
	MaxRestTime = 300
	MinReps     = 1
	MaxReps     = 100
	MinSets     = 1
	MaxSets     = 20
	MaxNameLen  = 100
)

// ValidateExercise проверяет параметры упражнения и возвращает *Error
// со всеми найденными проблемами
func ValidateExercise(e models.Exercise) error {
	var problems []string

	name := strings.TrimSpace(e.Name)
	switch {
	case name == "":
		problems = append(problems, "name is required")
	case len(name) > MaxNameLen:
		problems = append(problems, fmt.Sprintf("name must not exceed %d characters", MaxNameLen))
	}

	if e.RestTime < MinRestTime || e.RestTime > MaxRestTime {
		problems = append(problems, fmt.Sprintf("rest time must be between %d and %d seconds", MinRestTime, MaxRestTime))
	}
	if e.Reps < MinReps || e.Reps > MaxReps {
		problems = append(problems, fmt.Sprintf("reps must be between %d and %d", MinReps, MaxReps))
	}
	if e.Sets < MinSets || e.Sets > MaxSets {
		problems = append(problems, fmt.Sprintf("sets must be between %d and %d", MinSets, MaxSets))
	}
	if e.PrepareTime < 0 {
		problems = append(problems, "prepare time cannot be negative")
	}

	if len(problems) > 0 {
		return &Error{Problems: problems}
	}
	return nil
}
