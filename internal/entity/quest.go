package entity

import (
	"database/sql"

	"github.com/questday/backend/pkg/enum"
)

type QuestType string

var (
	QuestMain = enum.New(QuestType("main"))
	QuestSub  = enum.New(QuestType("sub"))
)

type QuestState string

var (
	QuestProceed  = enum.New(QuestState("proceed"))
	QuestComplete = enum.New(QuestState("complete"))
	QuestDiscard  = enum.New(QuestState("discard"))
	QuestFail     = enum.New(QuestState("fail"))
	QuestDelete   = enum.New(QuestState("delete"))
)

// IsTerminal reports whether no user action can leave the state anymore.
// Delete is reachable from every state but nothing leaves it.
func (s QuestState) IsTerminal() bool {
	return s != QuestProceed
}

type Quest struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_quests_user_seq,priority:1"`
	User   User   `gorm:"foreignKey:UserID"`

	// Seq is the dense per-user registration sequence number.
	Seq int64 `gorm:"uniqueIndex:idx_quests_user_seq,priority:2"`

	Title       string
	Description string `gorm:"type:text"`
	Type        QuestType
	State       QuestState `gorm:"index"`
	Deadline    sql.NullTime

	// RegisteredDay is the logical day the quest was registered on, kept
	// denormalized for the perfect-day batch query.
	RegisteredDay sql.NullTime
	CompletedDay  sql.NullTime

	Details []DetailQuest `gorm:"foreignKey:QuestID;constraint:OnDelete:CASCADE"`
}
