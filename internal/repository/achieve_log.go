package repository

import (
	"context"

	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AchieveLogRepository interface {
	Create(ctx context.Context, log *entity.AchievementAchieveLog) (bool, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.AchievementAchieveLog, error)
	Exist(ctx context.Context, achievementID, userID string) (bool, error)
}

type achieveLogRepository struct{}

func NewAchieveLogRepository() *achieveLogRepository {
	return &achieveLogRepository{}
}

// Create inserts the unlock row. A duplicate (achievement, user) pair is
// absorbed by the primary key and reported as inserted=false, so racing
// evaluations of the same achievement cannot write a second row or fail.
func (r *achieveLogRepository) Create(ctx context.Context, log *entity.AchievementAchieveLog) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(log)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *achieveLogRepository) GetByUserID(ctx context.Context, userID string) ([]entity.AchievementAchieveLog, error) {
	result := []entity.AchievementAchieveLog{}
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("achieved_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *achieveLogRepository) Exist(ctx context.Context, achievementID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.AchievementAchieveLog{}).
		Where("achievement_id=? AND user_id=?", achievementID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
