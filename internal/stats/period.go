package stats

import (
	"fmt"
	"time"
)

// DateLayout формат дат периода отчета
const DateLayout = "2006-01-02"

// ParseReportPeriod разбирает границы периода в формате YYYY-MM-DD.
// Пустая строка означает открытую границу. Конечная дата включается
// в период: возвращается начало следующего дня.
func ParseReportPeriod(start, end string, loc *time.Location) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if start != "" {
		t, err := time.ParseInLocation(DateLayout, start, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		from = &t
	}

	if end != "" {
		t, err := time.ParseInLocation(DateLayout, end, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}

	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, fmt.Errorf("start date %s is after end date %s", start, end)
	}

	return from, to, nil
}
