package repository

import (
	"context"

	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/pkg/xcontext"
)

type DetailQuestRepository interface {
	GetByID(ctx context.Context, id string) (*entity.DetailQuest, error)
	GetByQuestID(ctx context.Context, questID string) ([]entity.DetailQuest, error)
	Save(ctx context.Context, detail *entity.DetailQuest) error
	Replace(ctx context.Context, questID string, details []entity.DetailQuest) error
}

type detailQuestRepository struct{}

func NewDetailQuestRepository() *detailQuestRepository {
	return &detailQuestRepository{}
}

func (r *detailQuestRepository) GetByID(ctx context.Context, id string) (*entity.DetailQuest, error) {
	result := &entity.DetailQuest{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *detailQuestRepository) GetByQuestID(ctx context.Context, questID string) ([]entity.DetailQuest, error) {
	result := []entity.DetailQuest{}
	err := xcontext.DB(ctx).
		Where("quest_id=?", questID).
		Order("position ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *detailQuestRepository) Save(ctx context.Context, detail *entity.DetailQuest) error {
	return xcontext.DB(ctx).Save(detail).Error
}

// Replace swaps the full detail list of a quest. The merge policy deciding
// which counters survive belongs to the domain; by the time the list reaches
// here it is final.
func (r *detailQuestRepository) Replace(ctx context.Context, questID string, details []entity.DetailQuest) error {
	err := xcontext.DB(ctx).
		Unscoped().
		Where("quest_id=?", questID).
		Delete(&entity.DetailQuest{}).Error
	if err != nil {
		return err
	}

	if len(details) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(&details).Error
}
