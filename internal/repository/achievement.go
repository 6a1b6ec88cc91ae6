package repository

import (
	"context"

	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/pkg/xcontext"
)

type AchievementRepository interface {
	Create(ctx context.Context, achievement *entity.Achievement) error
	Save(ctx context.Context, achievement *entity.Achievement) error
	GetByID(ctx context.Context, id string) (*entity.Achievement, error)
	GetAll(ctx context.Context) ([]entity.Achievement, error)
	GetActiveByTypeAndTarget(ctx context.Context, typ entity.AchievementType, target int64) (*entity.Achievement, error)
	GetNextOfType(ctx context.Context, typ entity.AchievementType, userID string) (*entity.Achievement, error)
}

type achievementRepository struct{}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *entity.Achievement) error {
	return xcontext.DB(ctx).Create(achievement).Error
}

func (r *achievementRepository) Save(ctx context.Context, achievement *entity.Achievement) error {
	return xcontext.DB(ctx).Save(achievement).Error
}

func (r *achievementRepository) GetByID(ctx context.Context, id string) (*entity.Achievement, error) {
	result := &entity.Achievement{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *achievementRepository) GetAll(ctx context.Context) ([]entity.Achievement, error) {
	result := []entity.Achievement{}
	err := xcontext.DB(ctx).
		Order("type ASC, target_value ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *achievementRepository) GetActiveByTypeAndTarget(
	ctx context.Context, typ entity.AchievementType, target int64,
) (*entity.Achievement, error) {
	result := &entity.Achievement{}
	err := xcontext.DB(ctx).
		Where("type=? AND target_value=? AND active=?", typ, target, true).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetNextOfType returns the lowest-target active achievement of the type the
// user has not unlocked yet. Lower tiers always unlock before higher ones, so
// one row per evaluation is enough.
func (r *achievementRepository) GetNextOfType(
	ctx context.Context, typ entity.AchievementType, userID string,
) (*entity.Achievement, error) {
	result := &entity.Achievement{}
	err := xcontext.DB(ctx).
		Where("type=? AND active=?", typ, true).
		Where(`NOT EXISTS (
			SELECT 1 FROM achievement_achieve_logs
			WHERE achievement_achieve_logs.achievement_id = achievements.id
				AND achievement_achieve_logs.user_id = ?
		)`, userID).
		Order("target_value ASC").
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
