package domain

import (
	"testing"

	"github.com/questday/backend/internal/domain/achievement"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/model"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/errorx"
	"github.com/questday/backend/pkg/testutil"
	"github.com/questday/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newAchievementTestDomain() (AchievementDomain, repository.UserStatRepository, repository.AchieveLogRepository) {
	userStatRepo := repository.NewUserStatRepository()
	achievementRepo := repository.NewAchievementRepository()
	achieveLogRepo := repository.NewAchieveLogRepository()

	engine := achievement.NewEngine(
		achievementRepo, achieveLogRepo, &testutil.MockPublisher{},
		achievement.NewStatResolvers(userStatRepo)...,
	)

	domain := NewAchievementDomain(achievementRepo, achieveLogRepo, userStatRepo, engine)
	return domain, userStatRepo, achieveLogRepo
}

func Test_achievementDomain_Create_uniqueness(t *testing.T) {
	ctx := testutil.MockContext()
	domain, _, _ := newAchievementTestDomain()

	_, err := domain.Create(ctx, &model.CreateAchievementRequest{
		Title: "First quest", Type: "quest_registration", TargetValue: 1,
	})
	require.NoError(t, err)

	// A second active achievement with the same type and target is rejected.
	_, err = domain.Create(ctx, &model.CreateAchievementRequest{
		Title: "First quest again", Type: "quest_registration", TargetValue: 1,
	})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)

	// Another target of the same type is fine.
	_, err = domain.Create(ctx, &model.CreateAchievementRequest{
		Title: "Ten quests", Type: "quest_registration", TargetValue: 10,
	})
	require.NoError(t, err)

	_, err = domain.Create(ctx, &model.CreateAchievementRequest{
		Title: "Bad type", Type: "unknown_type", TargetValue: 1,
	})
	require.Error(t, err)
}

func Test_achievementDomain_Create_rescansExistingUsers(t *testing.T) {
	ctx := testutil.MockContext()
	domain, userStatRepo, achieveLogRepo := newAchievementTestDomain()

	veteran, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	rookie, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, userStatRepo.Create(ctx, &entity.UserStat{
		UserID: veteran.ID, QuestCompletionCount: 50,
	}))
	require.NoError(t, userStatRepo.Create(ctx, &entity.UserStat{
		UserID: rookie.ID, QuestCompletionCount: 3,
	}))

	// A new tier below the veteran's count unlocks for them immediately.
	resp, err := domain.Create(ctx, &model.CreateAchievementRequest{
		Title: "Forty quests done", Type: "quest_completion", TargetValue: 40,
	})
	require.NoError(t, err)

	veteranLogs, err := achieveLogRepo.GetByUserID(ctx, veteran.ID)
	require.NoError(t, err)
	require.Len(t, veteranLogs, 1)
	require.Equal(t, resp.ID, veteranLogs[0].AchievementID)

	rookieLogs, err := achieveLogRepo.GetByUserID(ctx, rookie.ID)
	require.NoError(t, err)
	require.Empty(t, rookieLogs)
}

func Test_achievementDomain_Update(t *testing.T) {
	ctx := testutil.MockContext()
	domain, userStatRepo, achieveLogRepo := newAchievementTestDomain()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, userStatRepo.Create(ctx, &entity.UserStat{
		UserID: user.ID, GoldEarnAmount: 500,
	}))

	resp, err := domain.Create(ctx, &model.CreateAchievementRequest{
		Title: "Rich", Type: "gold_earn", TargetValue: 1000,
	})
	require.NoError(t, err)

	logs, err := achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, logs)

	// Lowering the target below the user's stat rescans and unlocks.
	_, err = domain.Update(ctx, &model.UpdateAchievementRequest{
		ID: resp.ID, TargetValue: 300,
	})
	require.NoError(t, err)

	logs, err = achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	_, err = domain.Update(ctx, &model.UpdateAchievementRequest{ID: "no-such-id"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_achievementDomain_GetMyAchieveLogs(t *testing.T) {
	ctx := testutil.MockContext()
	domain, userStatRepo, _ := newAchievementTestDomain()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, userStatRepo.Create(ctx, &entity.UserStat{
		UserID: user.ID, QuestRegistrationCount: 5,
	}))

	created, err := domain.Create(ctx, &model.CreateAchievementRequest{
		Title: "Five quests", Type: "quest_registration", TargetValue: 5,
	})
	require.NoError(t, err)

	userCtx := xcontext.WithRequestUserID(ctx, user.ID)
	logsResp, err := domain.GetMyAchieveLogs(userCtx, &model.GetMyAchieveLogsRequest{})
	require.NoError(t, err)
	require.Len(t, logsResp.AchieveLogs, 1)
	require.Equal(t, created.ID, logsResp.AchieveLogs[0].Achievement.ID)
	require.NotEmpty(t, logsResp.AchieveLogs[0].AchievedAt)
}
