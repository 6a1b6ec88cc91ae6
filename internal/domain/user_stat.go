package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/questday/backend/internal/domain/achievement"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/model"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/dateutil"
	"github.com/questday/backend/pkg/errorx"
	"github.com/questday/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

type UserStatDomain interface {
	GetMyStat(context.Context, *model.GetMyStatRequest) (*model.GetMyStatResponse, error)

	// RecordRegistration and the other Record methods are called by the quest
	// domain and batch jobs inside the transaction of the triggering event.
	RecordRegistration(ctx context.Context, userID string, at time.Time) error
	RecordCompletion(ctx context.Context, userID string, at time.Time) error
	RecordGoldEarn(ctx context.Context, userID string, amount int64) error
	RecordGoldUse(ctx context.Context, userID string, amount int64) error
	RecordPerfectDay(ctx context.Context, userID string) error
}

type userStatDomain struct {
	userStatRepo repository.UserStatRepository
	engine       *achievement.Engine

	// userLocks serializes the read-modify-write cycle per user. Events of
	// different users still run fully in parallel.
	userLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewUserStatDomain(
	userStatRepo repository.UserStatRepository,
	engine *achievement.Engine,
) *userStatDomain {
	return &userStatDomain{
		userStatRepo: userStatRepo,
		engine:       engine,
		userLocks:    xsync.NewMapOf[*sync.Mutex](),
	}
}

func (d *userStatDomain) GetMyStat(
	ctx context.Context, req *model.GetMyStatRequest,
) (*model.GetMyStatResponse, error) {
	stat, err := d.loadOrCreate(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	resp := model.GetMyStatResponse(model.ConvertUserStat(stat))
	return &resp, nil
}

func (d *userStatDomain) RecordRegistration(ctx context.Context, userID string, at time.Time) error {
	return d.withStat(ctx, userID, func(stat *entity.UserStat) []entity.AchievementType {
		day := dateutil.LogicalDate(at, xcontext.Configs(ctx).Quest.DayResetHour)
		types := []entity.AchievementType{entity.AchievementQuestRegistration}
		if stat.RecordRegistration(day) {
			types = append(types, entity.AchievementQuestContinuousRegistration)
		}

		return types
	})
}

func (d *userStatDomain) RecordCompletion(ctx context.Context, userID string, at time.Time) error {
	return d.withStat(ctx, userID, func(stat *entity.UserStat) []entity.AchievementType {
		day := dateutil.LogicalDate(at, xcontext.Configs(ctx).Quest.DayResetHour)
		types := []entity.AchievementType{entity.AchievementQuestCompletion}
		if stat.RecordCompletion(day) {
			types = append(types, entity.AchievementQuestContinuousCompletion)
		}

		return types
	})
}

func (d *userStatDomain) RecordGoldEarn(ctx context.Context, userID string, amount int64) error {
	return d.withStat(ctx, userID, func(stat *entity.UserStat) []entity.AchievementType {
		stat.RecordGoldEarn(amount)
		return []entity.AchievementType{entity.AchievementGoldEarn}
	})
}

func (d *userStatDomain) RecordGoldUse(ctx context.Context, userID string, amount int64) error {
	return d.withStat(ctx, userID, func(stat *entity.UserStat) []entity.AchievementType {
		stat.RecordGoldUse(amount)
		return nil
	})
}

func (d *userStatDomain) RecordPerfectDay(ctx context.Context, userID string) error {
	return d.withStat(ctx, userID, func(stat *entity.UserStat) []entity.AchievementType {
		stat.RecordPerfectDay()
		return []entity.AchievementType{entity.AchievementPerfectDay}
	})
}

// withStat runs one stat mutation under the user's lock, persists the row,
// and evaluates the achievement types the mutation reported as affected.
func (d *userStatDomain) withStat(
	ctx context.Context, userID string,
	mutate func(*entity.UserStat) []entity.AchievementType,
) error {
	lock, _ := d.userLocks.LoadOrStore(userID, &sync.Mutex{})
	lock.Lock()
	defer lock.Unlock()

	stat, err := d.loadOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	types := mutate(stat)

	if err := d.userStatRepo.Save(ctx, stat); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save user stat: %v", err)
		return errorx.Unknown
	}

	for _, typ := range types {
		if err := d.engine.Evaluate(ctx, typ, userID); err != nil {
			return err
		}
	}

	return nil
}

// loadOrCreate returns the user's stat row, creating the zero row on the
// first event of the user.
func (d *userStatDomain) loadOrCreate(ctx context.Context, userID string) (*entity.UserStat, error) {
	stat, err := d.userStatRepo.Get(ctx, userID)
	if err == nil {
		return stat, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user stat: %v", err)
		return nil, errorx.Unknown
	}

	stat = &entity.UserStat{UserID: userID}
	if err := d.userStatRepo.Create(ctx, stat); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user stat: %v", err)
		return nil, errorx.Unknown
	}

	return stat, nil
}
