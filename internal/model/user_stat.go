package model

type UserStat struct {
	UserID string `json:"user_id,omitempty"`

	QuestRegistrationCount int64 `json:"quest_registration_count"`
	QuestCompletionCount   int64 `json:"quest_completion_count"`

	CurrentQuestContinuousRegistrationDays int `json:"current_quest_continuous_registration_days"`
	MaxQuestContinuousRegistrationDays     int `json:"max_quest_continuous_registration_days"`
	CurrentQuestContinuousCompletionDays   int `json:"current_quest_continuous_completion_days"`
	MaxQuestContinuousCompletionDays       int `json:"max_quest_continuous_completion_days"`

	PerfectDayCount int64 `json:"perfect_day_count"`

	GoldEarnAmount int64 `json:"gold_earn_amount"`
	GoldUseAmount  int64 `json:"gold_use_amount"`
}

type GetMyStatRequest struct{}

type GetMyStatResponse UserStat
