package model

type Achievement struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	TargetValue int64  `json:"target_value,omitempty"`
	Active      bool   `json:"active"`
}

type CreateAchievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	TargetValue int64  `json:"target_value"`
}

type CreateAchievementResponse struct {
	ID string `json:"id"`
}

type UpdateAchievementRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetValue int64  `json:"target_value"`
	Active      *bool  `json:"active,omitempty"`
}

type UpdateAchievementResponse struct{}

type GetAchievementsRequest struct{}

type GetAchievementsResponse struct {
	Achievements []Achievement `json:"achievements,omitempty"`
}

type GetMyAchieveLogsRequest struct{}

type AchieveLog struct {
	Achievement Achievement `json:"achievement"`
	AchievedAt  string      `json:"achieved_at"`
}

type GetMyAchieveLogsResponse struct {
	AchieveLogs []AchieveLog `json:"achieve_logs,omitempty"`
}
