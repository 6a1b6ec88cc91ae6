package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_LogicalDate(t *testing.T) {
	// 2026-03-10 05:59 belongs to March 9 when the day resets at 06:00.
	beforeReset := time.Date(2026, 3, 10, 5, 59, 0, 0, time.UTC)
	require.Equal(t,
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		LogicalDate(beforeReset, 6))

	afterReset := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	require.Equal(t,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		LogicalDate(afterReset, 6))

	// With a midnight reset the logical day is the calendar day.
	require.Equal(t,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		LogicalDate(beforeReset, 0))
}

func Test_NextReset(t *testing.T) {
	now := time.Date(2026, 3, 10, 5, 59, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC), NextReset(now, 6))

	// Exactly on the boundary rolls to the next day.
	onBoundary := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC), NextReset(onBoundary, 6))
}

func Test_IsNextDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	require.True(t, IsNextDay(day, day.AddDate(0, 0, 1)))
	require.False(t, IsNextDay(day, day))
	require.False(t, IsNextDay(day, day.AddDate(0, 0, 2)))

	// Time of day inside the instants does not matter.
	require.True(t, IsNextDay(day.Add(23*time.Hour), day.AddDate(0, 0, 1).Add(time.Hour)))
}
