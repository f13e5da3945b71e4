package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name string
		now  time.Time
		due  time.Time
		want int
	}{
		{
			name: "due later today",
			now:  time.Date(2026, 3, 10, 8, 0, 0, 0, loc),
			due:  time.Date(2026, 3, 10, 23, 59, 0, 0, loc),
			want: 0,
		},
		{
			name: "due tomorrow counts as one even late in the evening",
			now:  time.Date(2026, 3, 10, 23, 30, 0, 0, loc),
			due:  time.Date(2026, 3, 11, 0, 30, 0, 0, loc),
			want: 1,
		},
		{
			name: "due yesterday",
			now:  time.Date(2026, 3, 10, 0, 10, 0, 0, loc),
			due:  time.Date(2026, 3, 9, 23, 50, 0, 0, loc),
			want: -1,
		},
		{
			name: "due in a week",
			now:  time.Date(2026, 3, 10, 12, 0, 0, 0, loc),
			due:  time.Date(2026, 3, 17, 6, 0, 0, 0, loc),
			want: 7,
		},
		{
			name: "across a month boundary",
			now:  time.Date(2026, 1, 31, 18, 0, 0, 0, loc),
			due:  time.Date(2026, 2, 2, 9, 0, 0, 0, loc),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daysUntil(tt.now, tt.due))
		})
	}
}

// Around DST transitions the midnight-to-midnight gap is 23 or 25
// hours; the count must still step by whole calendar days so upcoming
// and overdue stay mutually exclusive.
func TestDaysUntilAcrossDSTTransitions(t *testing.T) {
	nyc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		due  time.Time
		want int
	}{
		{
			name: "due tomorrow across spring forward",
			now:  time.Date(2026, 3, 8, 12, 0, 0, 0, nyc),
			due:  time.Date(2026, 3, 9, 0, 0, 0, 0, nyc),
			want: 1,
		},
		{
			name: "due yesterday across spring forward",
			now:  time.Date(2026, 3, 9, 8, 0, 0, 0, nyc),
			due:  time.Date(2026, 3, 8, 23, 0, 0, 0, nyc),
			want: -1,
		},
		{
			name: "window spanning fall back",
			now:  time.Date(2026, 10, 31, 22, 0, 0, 0, nyc),
			due:  time.Date(2026, 11, 2, 1, 0, 0, 0, nyc),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daysUntil(tt.now, tt.due))
		})
	}
}
