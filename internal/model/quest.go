package model

type DetailQuest struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	TargetCount int    `json:"target_count,omitempty"`
	Count       int    `json:"count"`
	State       string `json:"state,omitempty"`
}

type Quest struct {
	ID          string        `json:"id,omitempty"`
	UserID      string        `json:"user_id,omitempty"`
	Seq         int64         `json:"seq,omitempty"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Type        string        `json:"type,omitempty"`
	State       string        `json:"state,omitempty"`
	Deadline    string        `json:"deadline,omitempty"`
	Details     []DetailQuest `json:"details,omitempty"`
}

type RegisterQuestRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Deadline    string        `json:"deadline"`
	Details     []DetailQuest `json:"details"`
}

type RegisterQuestResponse struct {
	ID  string `json:"id"`
	Seq int64  `json:"seq"`
}

type GetQuestRequest struct {
	ID string `json:"id"`
}

type GetQuestResponse Quest

type GetListQuestRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetListQuestResponse struct {
	Quests []Quest `json:"quests,omitempty"`
}

type UpdateDetailQuestsRequest struct {
	QuestID string        `json:"quest_id"`
	Details []DetailQuest `json:"details"`
}

type UpdateDetailQuestsResponse struct {
	Details []DetailQuest `json:"details,omitempty"`
}

type InteractDetailQuestRequest struct {
	QuestID  string `json:"quest_id"`
	DetailID string `json:"detail_id"`

	// Count, when set, overrides the toggle gesture with a clamp-set.
	Count *int `json:"count,omitempty"`
}

type InteractDetailQuestResponse struct {
	Detail      DetailQuest `json:"detail"`
	CanComplete bool        `json:"can_complete"`
}

type CompleteQuestRequest struct {
	ID string `json:"id"`
}

type CompleteQuestResponse struct {
	GoldEarned int64 `json:"gold_earned"`
}

type DiscardQuestRequest struct {
	ID string `json:"id"`
}

type DiscardQuestResponse struct{}

type DeleteQuestRequest struct {
	ID string `json:"id"`
}

type DeleteQuestResponse struct{}
