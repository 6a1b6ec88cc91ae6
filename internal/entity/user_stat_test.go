package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func Test_UserStat_RecordRegistration_streak(t *testing.T) {
	stat := &UserStat{}

	// First ever day starts the streak.
	require.True(t, stat.RecordRegistration(day(0)))
	require.Equal(t, 1, stat.CurrentQuestContinuousRegistrationDays)
	require.Equal(t, 1, stat.MaxQuestContinuousRegistrationDays)

	// Replay of the same day counts the quest but not the streak.
	require.False(t, stat.RecordRegistration(day(0)))
	require.Equal(t, int64(2), stat.QuestRegistrationCount)
	require.Equal(t, 1, stat.CurrentQuestContinuousRegistrationDays)

	// Next day continues.
	require.True(t, stat.RecordRegistration(day(1)))
	require.Equal(t, 2, stat.CurrentQuestContinuousRegistrationDays)
	require.Equal(t, 2, stat.MaxQuestContinuousRegistrationDays)

	// A gap restarts at one but the max survives.
	require.True(t, stat.RecordRegistration(day(4)))
	require.Equal(t, 1, stat.CurrentQuestContinuousRegistrationDays)
	require.Equal(t, 2, stat.MaxQuestContinuousRegistrationDays)

	require.True(t, stat.RecordRegistration(day(5)))
	require.True(t, stat.RecordRegistration(day(6)))
	require.Equal(t, 3, stat.CurrentQuestContinuousRegistrationDays)
	require.Equal(t, 3, stat.MaxQuestContinuousRegistrationDays)
}

func Test_UserStat_recordDay_lastDateMonotonic(t *testing.T) {
	stat := &UserStat{}

	require.True(t, stat.RecordCompletion(day(3)))
	require.Equal(t, day(3), stat.LastQuestCompletionDate.Time)

	// A stale event from an earlier day restarts the streak, since the day is
	// neither the last day nor the one after it, yet never moves the last date
	// backwards.
	require.True(t, stat.RecordCompletion(day(1)))
	require.Equal(t, 1, stat.CurrentQuestContinuousCompletionDays)
	require.Equal(t, day(3), stat.LastQuestCompletionDate.Time)
}

func Test_UserStat_gold(t *testing.T) {
	stat := &UserStat{}

	stat.RecordGoldEarn(10)
	stat.RecordGoldEarn(25)
	stat.RecordGoldUse(7)

	require.Equal(t, int64(35), stat.GoldEarnAmount)
	require.Equal(t, int64(7), stat.GoldUseAmount)
}
