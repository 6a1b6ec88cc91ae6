package achievement

import (
	"testing"

	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEngine(publisher *testutil.MockPublisher) (*Engine, repository.UserStatRepository, repository.AchieveLogRepository) {
	userStatRepo := repository.NewUserStatRepository()
	achievementRepo := repository.NewAchievementRepository()
	achieveLogRepo := repository.NewAchieveLogRepository()

	engine := NewEngine(
		achievementRepo, achieveLogRepo, publisher,
		NewStatResolvers(userStatRepo)...,
	)

	return engine, userStatRepo, achieveLogRepo
}

func Test_Engine_Evaluate_unlocks(t *testing.T) {
	ctx := testutil.MockContext()
	publisher := &testutil.MockPublisher{}
	engine, userStatRepo, achieveLogRepo := newTestEngine(publisher)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	bronze, err := testutil.SampleAchievement(ctx, &entity.Achievement{
		Type: entity.AchievementQuestRegistration, TargetValue: 2,
	})
	require.NoError(t, err)
	silver, err := testutil.SampleAchievement(ctx, &entity.Achievement{
		Type: entity.AchievementQuestRegistration, TargetValue: 5,
	})
	require.NoError(t, err)

	require.NoError(t, userStatRepo.Create(ctx, &entity.UserStat{
		UserID: user.ID, QuestRegistrationCount: 2,
	}))

	// The lowest tier unlocks first, the next one stays locked.
	require.NoError(t, engine.Evaluate(ctx, entity.AchievementQuestRegistration, user.ID))

	logs, err := achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, bronze.ID, logs[0].AchievementID)
	require.Len(t, publisher.Packs(), 1)

	// Re-evaluating with unchanged stats does nothing.
	require.NoError(t, engine.Evaluate(ctx, entity.AchievementQuestRegistration, user.ID))
	logs, err = achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	// After passing the next target, the next evaluation unlocks it.
	stat, err := userStatRepo.Get(ctx, user.ID)
	require.NoError(t, err)
	stat.QuestRegistrationCount = 7
	require.NoError(t, userStatRepo.Save(ctx, stat))

	require.NoError(t, engine.Evaluate(ctx, entity.AchievementQuestRegistration, user.ID))
	logs, err = achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, silver.ID, logs[1].AchievementID)
}

func Test_Engine_Evaluate_belowTarget(t *testing.T) {
	ctx := testutil.MockContext()
	publisher := &testutil.MockPublisher{}
	engine, userStatRepo, achieveLogRepo := newTestEngine(publisher)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = testutil.SampleAchievement(ctx, &entity.Achievement{
		Type: entity.AchievementGoldEarn, TargetValue: 100,
	})
	require.NoError(t, err)

	require.NoError(t, userStatRepo.Create(ctx, &entity.UserStat{
		UserID: user.ID, GoldEarnAmount: 99,
	}))

	require.NoError(t, engine.Evaluate(ctx, entity.AchievementGoldEarn, user.ID))

	logs, err := achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, logs)
	require.Empty(t, publisher.Packs())
}

func Test_Engine_Evaluate_missingStatRow(t *testing.T) {
	ctx := testutil.MockContext()
	engine, _, achieveLogRepo := newTestEngine(&testutil.MockPublisher{})

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = testutil.SampleAchievement(ctx, &entity.Achievement{
		Type: entity.AchievementPerfectDay, TargetValue: 1,
	})
	require.NoError(t, err)

	// A user with no stat row resolves to zero and unlocks nothing.
	require.NoError(t, engine.Evaluate(ctx, entity.AchievementPerfectDay, user.ID))

	logs, err := achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, logs)
}

func Test_Engine_Evaluate_duplicateUnlockAbsorbed(t *testing.T) {
	ctx := testutil.MockContext()
	publisher := &testutil.MockPublisher{}
	engine, userStatRepo, achieveLogRepo := newTestEngine(publisher)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	tier, err := testutil.SampleAchievement(ctx, &entity.Achievement{
		Type: entity.AchievementQuestCompletion, TargetValue: 1,
	})
	require.NoError(t, err)

	require.NoError(t, userStatRepo.Create(ctx, &entity.UserStat{
		UserID: user.ID, QuestCompletionCount: 1,
	}))

	require.NoError(t, engine.Evaluate(ctx, entity.AchievementQuestCompletion, user.ID))
	require.Len(t, publisher.Packs(), 1)

	// A second writer racing to the same unlock is absorbed by the primary
	// key. No new row, and the caller learns nothing was inserted.
	inserted, err := achieveLogRepo.Create(ctx, &entity.AchievementAchieveLog{
		AchievementID: tier.ID,
		UserID:        user.ID,
	})
	require.NoError(t, err)
	require.False(t, inserted)

	logs, err := achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	// Nothing left to unlock, so no extra event either.
	require.NoError(t, engine.Evaluate(ctx, entity.AchievementQuestCompletion, user.ID))
	require.Len(t, publisher.Packs(), 1)
}

func Test_Engine_Evaluate_inactiveIgnored(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userStatRepo, achieveLogRepo := newTestEngine(&testutil.MockPublisher{})

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	achievementRepo := repository.NewAchievementRepository()
	require.NoError(t, achievementRepo.Create(ctx, &entity.Achievement{
		Base:        entity.Base{ID: "inactive-achievement"},
		Title:       "Retired tier",
		Type:        entity.AchievementQuestCompletion,
		TargetValue: 1,
		Active:      false,
	}))

	require.NoError(t, userStatRepo.Create(ctx, &entity.UserStat{
		UserID: user.ID, QuestCompletionCount: 10,
	}))

	require.NoError(t, engine.Evaluate(ctx, entity.AchievementQuestCompletion, user.ID))

	logs, err := achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, logs)
}
