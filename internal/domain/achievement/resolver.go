package achievement

import (
	"context"
	"errors"

	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/repository"
	"gorm.io/gorm"
)

// statResolver serves every achievement type whose current value is a single
// user-stat field. A user without a stat row resolves to zero instead of an
// error, since no row just means no activity yet.
type statResolver struct {
	typ          entity.AchievementType
	column       string
	userStatRepo repository.UserStatRepository
	extract      func(*entity.UserStat) int64
}

func (r *statResolver) Type() entity.AchievementType {
	return r.typ
}

func (r *statResolver) StatColumn() string {
	return r.column
}

func (r *statResolver) CurrentValue(ctx context.Context, userID string) (int64, error) {
	stat, err := r.userStatRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, err
	}

	return r.extract(stat), nil
}

func NewQuestRegistrationResolver(userStatRepo repository.UserStatRepository) *statResolver {
	return &statResolver{
		typ:          entity.AchievementQuestRegistration,
		column:       "quest_registration_count",
		userStatRepo: userStatRepo,
		extract:      func(s *entity.UserStat) int64 { return s.QuestRegistrationCount },
	}
}

func NewQuestCompletionResolver(userStatRepo repository.UserStatRepository) *statResolver {
	return &statResolver{
		typ:          entity.AchievementQuestCompletion,
		column:       "quest_completion_count",
		userStatRepo: userStatRepo,
		extract:      func(s *entity.UserStat) int64 { return s.QuestCompletionCount },
	}
}

func NewContinuousRegistrationResolver(userStatRepo repository.UserStatRepository) *statResolver {
	return &statResolver{
		typ:          entity.AchievementQuestContinuousRegistration,
		column:       "max_quest_continuous_registration_days",
		userStatRepo: userStatRepo,
		extract:      func(s *entity.UserStat) int64 { return int64(s.MaxQuestContinuousRegistrationDays) },
	}
}

func NewContinuousCompletionResolver(userStatRepo repository.UserStatRepository) *statResolver {
	return &statResolver{
		typ:          entity.AchievementQuestContinuousCompletion,
		column:       "max_quest_continuous_completion_days",
		userStatRepo: userStatRepo,
		extract:      func(s *entity.UserStat) int64 { return int64(s.MaxQuestContinuousCompletionDays) },
	}
}

func NewGoldEarnResolver(userStatRepo repository.UserStatRepository) *statResolver {
	return &statResolver{
		typ:          entity.AchievementGoldEarn,
		column:       "gold_earn_amount",
		userStatRepo: userStatRepo,
		extract:      func(s *entity.UserStat) int64 { return s.GoldEarnAmount },
	}
}

func NewPerfectDayResolver(userStatRepo repository.UserStatRepository) *statResolver {
	return &statResolver{
		typ:          entity.AchievementPerfectDay,
		column:       "perfect_day_count",
		userStatRepo: userStatRepo,
		extract:      func(s *entity.UserStat) int64 { return s.PerfectDayCount },
	}
}

// NewStatResolvers builds one resolver per stat-backed achievement type.
func NewStatResolvers(userStatRepo repository.UserStatRepository) []CurrentValueResolver {
	return []CurrentValueResolver{
		NewQuestRegistrationResolver(userStatRepo),
		NewQuestCompletionResolver(userStatRepo),
		NewContinuousRegistrationResolver(userStatRepo),
		NewContinuousCompletionResolver(userStatRepo),
		NewGoldEarnResolver(userStatRepo),
		NewPerfectDayResolver(userStatRepo),
	}
}
