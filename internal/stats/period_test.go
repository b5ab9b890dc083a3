package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportPeriod(t *testing.T) {
	day := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name     string
		start    string
		end      string
		wantFrom *time.Time
		wantTo   *time.Time
		wantErr  bool
	}{
		{
			name:     "full month",
			start:    "2025-03-01",
			end:      "2025-03-31",
			wantFrom: day(2025, 3, 1),
			wantTo:   day(2025, 4, 1),
		},
		{
			name:     "same day",
			start:    "2025-03-10",
			end:      "2025-03-10",
			wantFrom: day(2025, 3, 10),
			wantTo:   day(2025, 3, 11),
		},
		{
			name: "open period",
		},
		{
			name:     "only start",
			start:    "2025-03-01",
			wantFrom: day(2025, 3, 1),
		},
		{
			name:    "bad start",
			start:   "01.03.2025",
			wantErr: true,
		},
		{
			name:    "bad end",
			end:     "2025-13-01",
			wantErr: true,
		},
		{
			name:    "start after end",
			start:   "2025-03-10",
			end:     "2025-03-09",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ParseReportPeriod(tt.start, tt.end, time.UTC)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}
