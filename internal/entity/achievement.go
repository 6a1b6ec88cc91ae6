package entity

import "github.com/questday/backend/pkg/enum"

type AchievementType string

var (
	AchievementQuestRegistration           = enum.New(AchievementType("quest_registration"))
	AchievementQuestCompletion             = enum.New(AchievementType("quest_completion"))
	AchievementQuestContinuousRegistration = enum.New(AchievementType("quest_continuous_registration"))
	AchievementQuestContinuousCompletion   = enum.New(AchievementType("quest_continuous_completion"))
	AchievementGoldEarn                    = enum.New(AchievementType("gold_earn"))
	AchievementPerfectDay                  = enum.New(AchievementType("perfect_day"))
)

// Achievement is a single tier of a typed threshold. Several achievements may
// share a type with different target values; active ones must not share a
// (type, target value) pair.
type Achievement struct {
	Base

	Title       string
	Description string
	Type        AchievementType `gorm:"index:idx_achievements_type_target,priority:1"`
	TargetValue int64           `gorm:"index:idx_achievements_type_target,priority:2"`
	Active      bool
}
