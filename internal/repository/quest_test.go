package repository_test

import (
	"errors"
	"testing"

	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_questRepository_UpdateStateFrom(t *testing.T) {
	ctx := testutil.MockContext()
	questRepo := repository.NewQuestRepository()

	completed, err := testutil.SampleQuest(ctx, &entity.Quest{
		State: entity.QuestComplete,
	})
	require.NoError(t, err)

	// A terminal quest never goes back through a proceed-only transition.
	err = questRepo.UpdateStateFrom(ctx, completed.ID, entity.QuestProceed, entity.QuestFail)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	got, err := questRepo.GetByID(ctx, completed.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestComplete, got.State)

	proceeding, err := testutil.SampleQuest(ctx, &entity.Quest{Seq: 2})
	require.NoError(t, err)

	err = questRepo.UpdateStateFrom(ctx, proceeding.ID, entity.QuestProceed, entity.QuestFail)
	require.NoError(t, err)

	got, err = questRepo.GetByID(ctx, proceeding.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestFail, got.State)
}
