package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/questday/backend/internal/domain/achievement"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/model"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/enum"
	"github.com/questday/backend/pkg/errorx"
	"github.com/questday/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AchievementDomain interface {
	Create(context.Context, *model.CreateAchievementRequest) (*model.CreateAchievementResponse, error)
	Update(context.Context, *model.UpdateAchievementRequest) (*model.UpdateAchievementResponse, error)
	GetAchievements(context.Context, *model.GetAchievementsRequest) (*model.GetAchievementsResponse, error)
	GetMyAchieveLogs(context.Context, *model.GetMyAchieveLogsRequest) (*model.GetMyAchieveLogsResponse, error)
}

type achievementDomain struct {
	achievementRepo repository.AchievementRepository
	achieveLogRepo  repository.AchieveLogRepository
	userStatRepo    repository.UserStatRepository
	engine          *achievement.Engine
}

func NewAchievementDomain(
	achievementRepo repository.AchievementRepository,
	achieveLogRepo repository.AchieveLogRepository,
	userStatRepo repository.UserStatRepository,
	engine *achievement.Engine,
) *achievementDomain {
	return &achievementDomain{
		achievementRepo: achievementRepo,
		achieveLogRepo:  achieveLogRepo,
		userStatRepo:    userStatRepo,
		engine:          engine,
	}
}

func (d *achievementDomain) Create(
	ctx context.Context, req *model.CreateAchievementRequest,
) (*model.CreateAchievementResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a title")
	}

	achievementType, err := enum.ToEnum[entity.AchievementType](req.Type)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid achievement type: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid achievement type %s", req.Type)
	}

	if _, ok := d.engine.Resolver(achievementType); !ok {
		return nil, errorx.New(errorx.BadRequest,
			"Unsupported achievement type %s, allow %v", req.Type, d.engine.AllTypes())
	}

	if req.TargetValue < 1 {
		return nil, errorx.New(errorx.BadRequest, "Require a positive target value")
	}

	if err := d.checkActiveUniqueness(ctx, achievementType, req.TargetValue, ""); err != nil {
		return nil, err
	}

	record := &entity.Achievement{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Description: req.Description,
		Type:        achievementType,
		TargetValue: req.TargetValue,
		Active:      true,
	}

	if err := d.achievementRepo.Create(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create achievement: %v", err)
		return nil, errorx.Unknown
	}

	d.rescan(ctx, record)

	return &model.CreateAchievementResponse{ID: record.ID}, nil
}

func (d *achievementDomain) Update(
	ctx context.Context, req *model.UpdateAchievementRequest,
) (*model.UpdateAchievementResponse, error) {
	record, err := d.achievementRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found achievement")
		}

		xcontext.Logger(ctx).Errorf("Cannot get achievement: %v", err)
		return nil, errorx.Unknown
	}

	targetChanged := false
	if req.Title != "" {
		record.Title = req.Title
	}

	if req.Description != "" {
		record.Description = req.Description
	}

	if req.TargetValue > 0 && req.TargetValue != record.TargetValue {
		record.TargetValue = req.TargetValue
		targetChanged = true
	}

	if req.Active != nil {
		record.Active = *req.Active
	}

	if record.Active {
		if err := d.checkActiveUniqueness(ctx, record.Type, record.TargetValue, record.ID); err != nil {
			return nil, err
		}
	}

	if err := d.achievementRepo.Save(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update achievement: %v", err)
		return nil, errorx.Unknown
	}

	if targetChanged && record.Active {
		d.rescan(ctx, record)
	}

	return &model.UpdateAchievementResponse{}, nil
}

func (d *achievementDomain) GetAchievements(
	ctx context.Context, req *model.GetAchievementsRequest,
) (*model.GetAchievementsResponse, error) {
	achievements, err := d.achievementRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievements: %v", err)
		return nil, errorx.Unknown
	}

	clientAchievements := []model.Achievement{}
	for i := range achievements {
		clientAchievements = append(clientAchievements, model.ConvertAchievement(&achievements[i]))
	}

	return &model.GetAchievementsResponse{Achievements: clientAchievements}, nil
}

func (d *achievementDomain) GetMyAchieveLogs(
	ctx context.Context, req *model.GetMyAchieveLogsRequest,
) (*model.GetMyAchieveLogsResponse, error) {
	logs, err := d.achieveLogRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achieve logs: %v", err)
		return nil, errorx.Unknown
	}

	clientLogs := []model.AchieveLog{}
	for _, log := range logs {
		record, err := d.achievementRepo.GetByID(ctx, log.AchievementID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get achievement of log: %v", err)
			return nil, errorx.Unknown
		}

		clientLogs = append(clientLogs, model.AchieveLog{
			Achievement: model.ConvertAchievement(record),
			AchievedAt:  log.AchievedAt.Format(model.DefaultTimeLayout),
		})
	}

	return &model.GetMyAchieveLogsResponse{AchieveLogs: clientLogs}, nil
}

// checkActiveUniqueness rejects a second active achievement with the same
// (type, target). Inactive duplicates are allowed, they are invisible to the
// unlock engine anyway.
func (d *achievementDomain) checkActiveUniqueness(
	ctx context.Context, typ entity.AchievementType, target int64, selfID string,
) error {
	existing, err := d.achievementRepo.GetActiveByTypeAndTarget(ctx, typ, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot check achievement uniqueness: %v", err)
		return errorx.Unknown
	}

	if existing.ID == selfID {
		return nil
	}

	return errorx.New(errorx.AlreadyExists,
		"Already have an active achievement of %s with target %d", typ, target)
}

// rescan unlocks the achievement for users whose stats already pass its
// target. It runs to completion and only logs failures, a user it misses
// still unlocks on their next stat change.
func (d *achievementDomain) rescan(ctx context.Context, record *entity.Achievement) {
	resolver, ok := d.engine.Resolver(record.Type)
	if !ok {
		return
	}

	batchCfg := xcontext.Configs(ctx).Batch
	for offset := 0; ; offset += batchCfg.ChunkSize {
		userIDs, err := d.userStatRepo.GetUserIDsWithAtLeast(
			ctx, resolver.StatColumn(), record.TargetValue, offset, batchCfg.ChunkSize)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot page user stats for rescan: %v", err)
			return
		}

		if len(userIDs) == 0 {
			return
		}

		for _, userID := range userIDs {
			var err error
			for retry := 0; retry < batchCfg.MaxRetry; retry++ {
				if err = d.engine.Evaluate(ctx, record.Type, userID); err == nil {
					break
				}

				time.Sleep(time.Duration(retry+1) * 50 * time.Millisecond)
			}

			if err != nil {
				xcontext.Logger(ctx).Errorf(
					"Give up rescanning achievement %s for user %s: %v", record.ID, userID, err)
			}
		}

		if len(userIDs) < batchCfg.ChunkSize {
			return
		}
	}
}
