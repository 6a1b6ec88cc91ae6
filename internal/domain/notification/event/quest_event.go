package event

type QuestRegisteredEvent struct {
	QuestID string `json:"quest_id"`
	Seq     int64  `json:"seq"`
	Title   string `json:"title"`
}

func (QuestRegisteredEvent) Op() string {
	return "quest_registered"
}

type QuestCompletedEvent struct {
	QuestID    string `json:"quest_id"`
	Title      string `json:"title"`
	GoldEarned int64  `json:"gold_earned"`
}

func (QuestCompletedEvent) Op() string {
	return "quest_completed"
}

type QuestDiscardedEvent struct {
	QuestID string `json:"quest_id"`
	Title   string `json:"title"`
}

func (QuestDiscardedEvent) Op() string {
	return "quest_discarded"
}

type QuestFailedEvent struct {
	QuestID string `json:"quest_id"`
	Title   string `json:"title"`
}

func (QuestFailedEvent) Op() string {
	return "quest_failed"
}
