package entity

import "github.com/questday/backend/pkg/enum"

type DetailQuestType string

var (
	DetailCheck = enum.New(DetailQuestType("check"))
	DetailCount = enum.New(DetailQuestType("count"))
)

type DetailQuestState string

var (
	DetailProceed  = enum.New(DetailQuestState("proceed"))
	DetailComplete = enum.New(DetailQuestState("complete"))
)

type DetailQuest struct {
	Base

	QuestID string `gorm:"index"`

	// Position is the index of this detail inside its quest. Detail updates
	// are merged positionally, not by id.
	Position int

	Title       string
	Type        DetailQuestType
	TargetCount int
	Count       int
	State       DetailQuestState
}

// SetCount clamp-sets the counter and rederives the state. It is the only
// place allowed to change Count so the [0, TargetCount] bound always holds.
func (d *DetailQuest) SetCount(count int) {
	if count < 0 {
		count = 0
	}

	if count > d.TargetCount {
		count = d.TargetCount
	}

	d.Count = count
	if d.Count == d.TargetCount {
		d.State = DetailComplete
	} else {
		d.State = DetailProceed
	}
}

// Interact applies the no-explicit-count gesture: a completed detail resets,
// anything else advances by one.
func (d *DetailQuest) Interact() {
	if d.State == DetailComplete {
		d.SetCount(0)
	} else {
		d.SetCount(d.Count + 1)
	}
}

func (d *DetailQuest) IsComplete() bool {
	return d.State == DetailComplete
}
