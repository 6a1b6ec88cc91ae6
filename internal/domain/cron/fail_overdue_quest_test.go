package cron

import (
	"database/sql"
	"testing"
	"time"

	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/dateutil"
	"github.com/questday/backend/pkg/testutil"
	"github.com/questday/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_FailOverdueQuestCronJob(t *testing.T) {
	ctx := testutil.MockContext()
	questRepo := repository.NewQuestRepository()
	publisher := &testutil.MockPublisher{}

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	overdue, err := testutil.SampleQuest(ctx, &entity.Quest{
		UserID:   user.ID,
		Deadline: sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
	})
	require.NoError(t, err)

	healthy, err := testutil.SampleQuest(ctx, &entity.Quest{
		UserID:   user.ID,
		Seq:      2,
		Deadline: sql.NullTime{Valid: true, Time: time.Now().Add(time.Hour)},
	})
	require.NoError(t, err)

	// Registered on the current logical day without a deadline, so its
	// implicit day boundary has not passed yet.
	noDeadline, err := testutil.SampleQuest(ctx, &entity.Quest{
		UserID: user.ID,
		Seq:    3,
	})
	require.NoError(t, err)

	// Registered yesterday without a deadline. The day boundary has rolled
	// over, so the sweep must fail it.
	resetHour := xcontext.Configs(ctx).Quest.DayResetHour
	yesterday := dateutil.LogicalDate(time.Now(), resetHour).AddDate(0, 0, -1)
	staleNoDeadline, err := testutil.SampleQuest(ctx, &entity.Quest{
		UserID:        user.ID,
		Seq:           5,
		RegisteredDay: sql.NullTime{Valid: true, Time: yesterday},
	})
	require.NoError(t, err)

	// Terminal states are left alone even if overdue.
	completedOverdue, err := testutil.SampleQuest(ctx, &entity.Quest{
		UserID:   user.ID,
		Seq:      4,
		State:    entity.QuestComplete,
		Deadline: sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
	})
	require.NoError(t, err)

	NewFailOverdueQuestCronJob(questRepo, publisher).Do(ctx)

	got, err := questRepo.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestFail, got.State)

	got, err = questRepo.GetByID(ctx, healthy.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestProceed, got.State)

	got, err = questRepo.GetByID(ctx, noDeadline.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestProceed, got.State)

	got, err = questRepo.GetByID(ctx, staleNoDeadline.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestFail, got.State)

	got, err = questRepo.GetByID(ctx, completedOverdue.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestComplete, got.State)

	require.Len(t, publisher.Packs(), 2)
}
