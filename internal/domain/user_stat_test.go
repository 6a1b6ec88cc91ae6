package domain

import (
	"testing"
	"time"

	"github.com/questday/backend/internal/domain/achievement"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/model"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/testutil"
	"github.com/questday/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newUserStatTestDomain() (UserStatDomain, repository.UserStatRepository, repository.AchieveLogRepository) {
	userStatRepo := repository.NewUserStatRepository()
	achievementRepo := repository.NewAchievementRepository()
	achieveLogRepo := repository.NewAchieveLogRepository()

	engine := achievement.NewEngine(
		achievementRepo, achieveLogRepo, &testutil.MockPublisher{},
		achievement.NewStatResolvers(userStatRepo)...,
	)

	return NewUserStatDomain(userStatRepo, engine), userStatRepo, achieveLogRepo
}

func Test_userStatDomain_GetMyStat_bootstrap(t *testing.T) {
	ctx := testutil.MockContext()
	statDomain, userStatRepo, _ := newUserStatTestDomain()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	// The first read creates the zero row.
	resp, err := statDomain.GetMyStat(ctx, &model.GetMyStatRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.QuestRegistrationCount)

	_, err = userStatRepo.Get(ctx, user.ID)
	require.NoError(t, err)
}

func Test_userStatDomain_RecordRegistration_unlocksAchievement(t *testing.T) {
	ctx := testutil.MockContext()
	statDomain, userStatRepo, achieveLogRepo := newUserStatTestDomain()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	first, err := testutil.SampleAchievement(ctx, &entity.Achievement{
		Type: entity.AchievementQuestRegistration, TargetValue: 1,
	})
	require.NoError(t, err)
	streak, err := testutil.SampleAchievement(ctx, &entity.Achievement{
		Type: entity.AchievementQuestContinuousRegistration, TargetValue: 2,
	})
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, statDomain.RecordRegistration(ctx, user.ID, now))

	logs, err := achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, first.ID, logs[0].AchievementID)

	// The second consecutive day reaches the streak achievement.
	require.NoError(t, statDomain.RecordRegistration(ctx, user.ID, now.AddDate(0, 0, 1)))

	logs, err = achieveLogRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, streak.ID, logs[1].AchievementID)

	stat, err := userStatRepo.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), stat.QuestRegistrationCount)
	require.Equal(t, 2, stat.CurrentQuestContinuousRegistrationDays)
}
