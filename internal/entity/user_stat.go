package entity

import (
	"database/sql"
	"time"

	"github.com/questday/backend/pkg/dateutil"
	"github.com/pkg/math"
	"gorm.io/gorm"
)

// UserStat is the single per-user aggregate of quest counters, day streaks,
// perfect days, and gold. Callers load it, mutate it through the Record
// methods, and persist it inside the same transaction as the triggering quest
// event.
type UserStat struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	QuestRegistrationCount int64
	QuestCompletionCount   int64

	CurrentQuestContinuousRegistrationDays int
	MaxQuestContinuousRegistrationDays     int
	CurrentQuestContinuousCompletionDays   int
	MaxQuestContinuousCompletionDays       int

	LastQuestRegistrationDate sql.NullTime
	LastQuestCompletionDate   sql.NullTime

	PerfectDayCount int64

	GoldEarnAmount int64
	GoldUseAmount  int64
}

// RecordRegistration counts one quest registration on the given logical day.
// The registration count follows quests, so replays of the same day keep
// incrementing it, while the streak advances at most once per day.
//
// It reports whether the continuous-day streak changed.
func (s *UserStat) RecordRegistration(day time.Time) bool {
	s.QuestRegistrationCount++

	streakChanged := recordDay(
		day,
		&s.LastQuestRegistrationDate,
		&s.CurrentQuestContinuousRegistrationDays,
		&s.MaxQuestContinuousRegistrationDays,
	)

	return streakChanged
}

// RecordCompletion mirrors RecordRegistration against the completion
// counters.
func (s *UserStat) RecordCompletion(day time.Time) bool {
	s.QuestCompletionCount++

	return recordDay(
		day,
		&s.LastQuestCompletionDate,
		&s.CurrentQuestContinuousCompletionDays,
		&s.MaxQuestContinuousCompletionDays,
	)
}

func (s *UserStat) RecordGoldEarn(amount int64) {
	s.GoldEarnAmount += amount
}

func (s *UserStat) RecordGoldUse(amount int64) {
	s.GoldUseAmount += amount
}

// RecordPerfectDay is driven only by the daily batch detector, never by a
// single quest event.
func (s *UserStat) RecordPerfectDay() {
	s.PerfectDayCount++
}

// recordDay applies the day-streak rules to one (lastDate, current, max)
// triple. A day continues the streak iff it is the first day ever recorded or
// exactly one day after the last recorded day. A genuinely new day with a gap
// restarts the streak at one; a replay of an already-recorded day changes
// nothing. lastDate only ever moves forward.
func recordDay(day time.Time, lastDate *sql.NullTime, current, maxDays *int) bool {
	day = dateutil.Date(day)

	streakChanged := false
	switch {
	case !lastDate.Valid || dateutil.IsNextDay(lastDate.Time, day):
		*current++
		*maxDays = math.MaxInt(*maxDays, *current)
		streakChanged = true

	case !dateutil.IsSameDay(lastDate.Time, day):
		*current = 1
		streakChanged = true
	}

	if !lastDate.Valid || day.After(lastDate.Time) {
		*lastDate = sql.NullTime{Valid: true, Time: day}
	}

	return streakChanged
}
