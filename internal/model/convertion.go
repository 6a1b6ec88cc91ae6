package model

import (
	"time"

	"github.com/questday/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertDetailQuest(detail *entity.DetailQuest) DetailQuest {
	if detail == nil {
		return DetailQuest{}
	}

	return DetailQuest{
		ID:          detail.ID,
		Title:       detail.Title,
		Type:        string(detail.Type),
		TargetCount: detail.TargetCount,
		Count:       detail.Count,
		State:       string(detail.State),
	}
}

func ConvertQuest(quest *entity.Quest) Quest {
	if quest == nil {
		return Quest{}
	}

	deadline := ""
	if quest.Deadline.Valid {
		deadline = quest.Deadline.Time.Format(DefaultTimeLayout)
	}

	details := []DetailQuest{}
	for i := range quest.Details {
		details = append(details, ConvertDetailQuest(&quest.Details[i]))
	}

	return Quest{
		ID:          quest.ID,
		UserID:      quest.UserID,
		Seq:         quest.Seq,
		Title:       quest.Title,
		Description: quest.Description,
		Type:        string(quest.Type),
		State:       string(quest.State),
		Deadline:    deadline,
		Details:     details,
	}
}

func ConvertAchievement(achievement *entity.Achievement) Achievement {
	if achievement == nil {
		return Achievement{}
	}

	return Achievement{
		ID:          achievement.ID,
		Title:       achievement.Title,
		Description: achievement.Description,
		Type:        string(achievement.Type),
		TargetValue: achievement.TargetValue,
		Active:      achievement.Active,
	}
}

func ConvertUserStat(stat *entity.UserStat) UserStat {
	if stat == nil {
		return UserStat{}
	}

	return UserStat{
		UserID:                                 stat.UserID,
		QuestRegistrationCount:                 stat.QuestRegistrationCount,
		QuestCompletionCount:                   stat.QuestCompletionCount,
		CurrentQuestContinuousRegistrationDays: stat.CurrentQuestContinuousRegistrationDays,
		MaxQuestContinuousRegistrationDays:     stat.MaxQuestContinuousRegistrationDays,
		CurrentQuestContinuousCompletionDays:   stat.CurrentQuestContinuousCompletionDays,
		MaxQuestContinuousCompletionDays:       stat.MaxQuestContinuousCompletionDays,
		PerfectDayCount:                        stat.PerfectDayCount,
		GoldEarnAmount:                         stat.GoldEarnAmount,
		GoldUseAmount:                          stat.GoldUseAmount,
	}
}
