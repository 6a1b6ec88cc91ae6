package cron

import (
	"context"
	"errors"
	"time"

	"github.com/questday/backend/internal/domain/notification/event"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/dateutil"
	"github.com/questday/backend/pkg/pubsub"
	"github.com/questday/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// FailOverdueQuestCronJob sweeps proceeding quests whose deadline has passed
// and turns them into the fail state. Quests without an explicit deadline are
// bound to their registration day and fail once that day rolls over.
type FailOverdueQuestCronJob struct {
	questRepo repository.QuestRepository
	publisher pubsub.Publisher
}

func NewFailOverdueQuestCronJob(
	questRepo repository.QuestRepository,
	publisher pubsub.Publisher,
) *FailOverdueQuestCronJob {
	return &FailOverdueQuestCronJob{questRepo: questRepo, publisher: publisher}
}

func (job *FailOverdueQuestCronJob) Do(ctx context.Context) {
	batchCfg := xcontext.Configs(ctx).Batch
	cutoff := time.Now()
	day := dateutil.LogicalDate(cutoff, xcontext.Configs(ctx).Quest.DayResetHour)

	for {
		quests, err := job.questRepo.GetOverdue(ctx, cutoff, day, batchCfg.ChunkSize)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get overdue quests: %v", err)
			return
		}

		if len(quests) == 0 {
			return
		}

		progressed := false
		for _, quest := range quests {
			var err error
			for retry := 0; retry < batchCfg.MaxRetry; retry++ {
				err = job.questRepo.UpdateStateFrom(ctx, quest.ID, entity.QuestProceed, entity.QuestFail)
				if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
					break
				}

				time.Sleep(time.Duration(retry+1) * 50 * time.Millisecond)
			}

			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The owner completed or discarded the quest after the chunk
				// was read. It left the proceed state, so nothing to do here.
				progressed = true
				continue
			}

			if err != nil {
				// The quest stays overdue and the next sweep picks it up again.
				xcontext.Logger(ctx).Errorf("Give up failing quest %s: %v", quest.ID, err)
				continue
			}

			progressed = true
			event.Publish(ctx, job.publisher, event.QuestFailedEvent{
				QuestID: quest.ID,
				Title:   quest.Title,
			}, quest.UserID)
		}

		// Every quest left proceeding reappears in the next query. Without
		// progress the loop would spin on the same chunk forever.
		if !progressed || len(quests) < batchCfg.ChunkSize {
			return
		}
	}
}

func (job *FailOverdueQuestCronJob) RunNow() bool {
	return true
}

func (job *FailOverdueQuestCronJob) Next() time.Time {
	return time.Now().Truncate(time.Hour).Add(time.Hour)
}
