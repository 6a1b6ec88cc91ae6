package repository

import (
	"context"

	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStatRepository interface {
	Create(ctx context.Context, stat *entity.UserStat) error
	Get(ctx context.Context, userID string) (*entity.UserStat, error)
	Save(ctx context.Context, stat *entity.UserStat) error
	IncreaseGold(ctx context.Context, userID string, earn, use int64) error
	GetUserIDsWithAtLeast(ctx context.Context, column string, value int64, offset, limit int) ([]string, error)
}

type userStatRepository struct{}

func NewUserStatRepository() *userStatRepository {
	return &userStatRepository{}
}

func (r *userStatRepository) Create(ctx context.Context, stat *entity.UserStat) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(stat).Error
}

func (r *userStatRepository) Get(ctx context.Context, userID string) (*entity.UserStat, error) {
	result := &entity.UserStat{}
	if err := xcontext.DB(ctx).Take(result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userStatRepository) Save(ctx context.Context, stat *entity.UserStat) error {
	return xcontext.DB(ctx).Save(stat).Error
}

func (r *userStatRepository) IncreaseGold(ctx context.Context, userID string, earn, use int64) error {
	updateMap := map[string]any{}
	if earn != 0 {
		updateMap["gold_earn_amount"] = gorm.Expr("gold_earn_amount+?", earn)
	}

	if use != 0 {
		updateMap["gold_use_amount"] = gorm.Expr("gold_use_amount+?", use)
	}

	if len(updateMap) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).Model(&entity.UserStat{}).
		Where("user_id=?", userID).
		Updates(updateMap)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetUserIDsWithAtLeast pages through users whose given stat column already
// reached value. The column name comes from the closed resolver table, never
// from request input.
func (r *userStatRepository) GetUserIDsWithAtLeast(ctx context.Context, column string, value int64, offset, limit int) ([]string, error) {
	result := []string{}
	err := xcontext.DB(ctx).Model(&entity.UserStat{}).
		Where(column+">=?", value).
		Order("user_id ASC").
		Offset(offset).Limit(limit).
		Pluck("user_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
