package repository

import (
	"context"
	"time"

	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestRepository interface {
	Create(ctx context.Context, quest *entity.Quest) error
	GetByID(ctx context.Context, id string) (*entity.Quest, error)
	GetList(ctx context.Context, userID string, offset, limit int) ([]entity.Quest, error)
	MaxSeq(ctx context.Context, userID string) (int64, error)
	UpdateState(ctx context.Context, id string, state entity.QuestState) error
	UpdateStateFrom(ctx context.Context, id string, from, to entity.QuestState) error
	SetCompletedDay(ctx context.Context, id string, day time.Time) error
	GetOverdue(ctx context.Context, cutoff, day time.Time, limit int) ([]entity.Quest, error)
	GetPerfectDayCandidates(ctx context.Context, day time.Time, offset, limit int) ([]string, error)
	CountRegisteredOn(ctx context.Context, userID string, day time.Time) (int64, error)
	CountCompletedOn(ctx context.Context, userID string, day time.Time) (int64, error)
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) Create(ctx context.Context, quest *entity.Quest) error {
	return xcontext.DB(ctx).Create(quest).Error
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*entity.Quest, error) {
	result := &entity.Quest{}
	err := xcontext.DB(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Take(result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetList(ctx context.Context, userID string, offset, limit int) ([]entity.Quest, error) {
	result := []entity.Quest{}
	err := xcontext.DB(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id=?", userID).
		Order("seq DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) MaxSeq(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Quest{}).
		Select("COALESCE(MAX(seq), 0)").
		Where("user_id=?", userID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

// UpdateState sets the state regardless of the current one. Only the delete
// flow may use it, every other transition must leave the proceed state and
// goes through UpdateStateFrom.
func (r *questRepository) UpdateState(ctx context.Context, id string, state entity.QuestState) error {
	tx := xcontext.DB(ctx).Model(&entity.Quest{}).
		Where("id=?", id).
		Update("state", state)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateStateFrom sets the state only if the quest is still in the expected
// one. ErrRecordNotFound means another writer moved the quest away first.
func (r *questRepository) UpdateStateFrom(ctx context.Context, id string, from, to entity.QuestState) error {
	tx := xcontext.DB(ctx).Model(&entity.Quest{}).
		Where("id=? AND state=?", id, from).
		Update("state", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *questRepository) SetCompletedDay(ctx context.Context, id string, day time.Time) error {
	return xcontext.DB(ctx).Model(&entity.Quest{}).
		Where("id=?", id).
		Update("completed_day", day).Error
}

// GetOverdue returns one chunk of proceeding quests whose deadline already
// passed. Quests registered without a deadline implicitly expire when their
// registration day rolls over, so they match once registered_day falls before
// the given logical day.
func (r *questRepository) GetOverdue(ctx context.Context, cutoff, day time.Time, limit int) ([]entity.Quest, error) {
	result := []entity.Quest{}
	err := xcontext.DB(ctx).
		Where("state=? AND ((deadline IS NOT NULL AND deadline<?) OR (deadline IS NULL AND registered_day<?))",
			entity.QuestProceed, cutoff, day).
		Order("created_at ASC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetPerfectDayCandidates returns one page of the users who registered at
// least one quest on the given logical day.
func (r *questRepository) GetPerfectDayCandidates(ctx context.Context, day time.Time, offset, limit int) ([]string, error) {
	result := []string{}
	err := xcontext.DB(ctx).Model(&entity.Quest{}).
		Distinct("user_id").
		Where("registered_day=?", day).
		Order("user_id ASC").
		Offset(offset).Limit(limit).
		Pluck("user_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CountRegisteredOn counts the quests registered on the day which still count
// against a perfect day, so discarded and deleted ones are left out.
func (r *questRepository) CountRegisteredOn(ctx context.Context, userID string, day time.Time) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Quest{}).
		Where("user_id=? AND registered_day=? AND state NOT IN ?",
			userID, day, []entity.QuestState{entity.QuestDiscard, entity.QuestDelete}).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

// CountCompletedOn counts the quests registered on the day that were also
// completed before the day rolled over.
func (r *questRepository) CountCompletedOn(ctx context.Context, userID string, day time.Time) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Quest{}).
		Where("user_id=? AND registered_day=? AND state=? AND completed_day=registered_day",
			userID, day, entity.QuestComplete).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
