package event

type AchievementUnlockedEvent struct {
	AchievementID string `json:"achievement_id"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	TargetValue   int64  `json:"target_value"`
}

func (AchievementUnlockedEvent) Op() string {
	return "achievement_unlocked"
}
