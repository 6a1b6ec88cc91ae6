package achievement

import (
	"context"
	"errors"
	"time"

	"github.com/questday/backend/internal/common"
	"github.com/questday/backend/internal/domain/notification/event"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/errorx"
	"github.com/questday/backend/pkg/pubsub"
	"github.com/questday/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type Engine struct {
	// This field is only written at initialization. After that, it is
	// readonly, so no lock is needed around it.
	resolvers map[entity.AchievementType]CurrentValueResolver

	achievementRepo repository.AchievementRepository
	achieveLogRepo  repository.AchieveLogRepository
	publisher       pubsub.Publisher
}

func NewEngine(
	achievementRepo repository.AchievementRepository,
	achieveLogRepo repository.AchieveLogRepository,
	publisher pubsub.Publisher,
	resolvers ...CurrentValueResolver,
) *Engine {
	engine := &Engine{
		resolvers:       make(map[entity.AchievementType]CurrentValueResolver),
		achievementRepo: achievementRepo,
		achieveLogRepo:  achieveLogRepo,
		publisher:       publisher,
	}

	for _, r := range resolvers {
		engine.resolvers[r.Type()] = r
	}

	return engine
}

func (e *Engine) AllTypes() []entity.AchievementType {
	types := common.MapKeys(e.resolvers)
	slices.Sort(types)
	return types
}

func (e *Engine) Resolver(typ entity.AchievementType) (CurrentValueResolver, bool) {
	r, ok := e.resolvers[typ]
	return r, ok
}

// Evaluate checks the next locked tier of the type for the user and unlocks
// it when the current value reached its target. Exactly one tier is checked
// per call; a user passing several tiers at once unlocks them across the
// following calls, always in ascending target order.
//
// Evaluate may be called concurrently for the same user. The achieve-log
// primary key absorbs the race, so at most one unlock row ever exists per
// (achievement, user) pair and the loser of the race is a silent no-op.
func (e *Engine) Evaluate(ctx context.Context, typ entity.AchievementType, userID string) error {
	resolver, ok := e.resolvers[typ]
	if !ok {
		xcontext.Logger(ctx).Errorf("Not found resolver of achievement type %s", typ)
		return errorx.Unknown
	}

	achievement, err := e.achievementRepo.GetNextOfType(ctx, typ, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Every tier of this type is already unlocked.
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get next achievement of %s: %v", typ, err)
		return errorx.Unknown
	}

	currentValue, err := resolver.CurrentValue(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve current value of %s: %v", typ, err)
		return errorx.Unknown
	}

	if currentValue < achievement.TargetValue {
		return nil
	}

	inserted, err := e.achieveLogRepo.Create(ctx, &entity.AchievementAchieveLog{
		AchievementID: achievement.ID,
		UserID:        userID,
		AchievedAt:    time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create achieve log: %v", err)
		return errorx.Unknown
	}

	if !inserted {
		// A concurrent evaluation already wrote this unlock.
		return nil
	}

	event.Publish(ctx, e.publisher, event.AchievementUnlockedEvent{
		AchievementID: achievement.ID,
		Title:         achievement.Title,
		Type:          string(achievement.Type),
		TargetValue:   achievement.TargetValue,
	}, userID)

	return nil
}
