package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 4, 5, 0, time.UTC)
}

func TestMonthBoundaries(t *testing.T) {
	ts := date(2024, time.February, 10)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(ts))
	end := EndOfMonth(ts)
	assert.Equal(t, 29, end.Day())
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 23, end.Hour())
}

func TestLastMonth(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		startYear  int
		startWeek  int
		endYear    int
		endWeek    int
		startMonth time.Month
	}{
		{"mid year", date(2026, time.October, 16), 2026, 36, 2026, 40, time.September},
		{"january rolls back to december", date(2025, time.January, 15), 2024, 48, 2025, 1, time.December},
		{"month starting in previous iso year", date(2023, time.February, 15), 2022, 52, 2023, 5, time.January},
		{"end of month does not overflow", date(2026, time.March, 31), 2026, 5, 2026, 9, time.February},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := LastMonth(tc.now)
			assert.Equal(t, tc.startMonth, w.Start.Month())
			assert.Equal(t, 1, w.Start.Day())
			assert.Equal(t, tc.startMonth, w.End.Month())
			assert.Equal(t, tc.startYear, w.StartYear)
			assert.Equal(t, tc.startWeek, w.StartWeek)
			assert.Equal(t, tc.endYear, w.EndYear)
			assert.Equal(t, tc.endWeek, w.EndWeek)
		})
	}
}

func TestWindowContains(t *testing.T) {
	w := LastMonth(date(2026, time.October, 16))
	assert.True(t, w.Contains(2026, 36))
	assert.True(t, w.Contains(2026, 40))
	assert.False(t, w.Contains(2026, 35))
	assert.False(t, w.Contains(2026, 41))
	assert.False(t, w.Contains(2025, 38))

	dec := LastMonth(date(2025, time.January, 15))
	assert.True(t, dec.Contains(2024, 48))
	assert.True(t, dec.Contains(2024, 52))
	assert.True(t, dec.Contains(2025, 1))
	assert.False(t, dec.Contains(2024, 47))
	assert.False(t, dec.Contains(2025, 2))
}
