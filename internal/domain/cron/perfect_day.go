package cron

import (
	"context"
	"time"

	"github.com/questday/backend/internal/domain"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/dateutil"
	"github.com/questday/backend/pkg/xcontext"
)

// PerfectDayCronJob runs right after the day reset and credits a perfect day
// to every user who completed all quests registered on the day that just
// ended. Discarded and deleted quests do not count against the user.
type PerfectDayCronJob struct {
	questRepo      repository.QuestRepository
	userStatDomain domain.UserStatDomain

	// Next has no context, so the reset hour is captured at construction.
	dayResetHour int
}

func NewPerfectDayCronJob(
	questRepo repository.QuestRepository,
	userStatDomain domain.UserStatDomain,
	dayResetHour int,
) *PerfectDayCronJob {
	return &PerfectDayCronJob{
		questRepo:      questRepo,
		userStatDomain: userStatDomain,
		dayResetHour:   dayResetHour,
	}
}

func (job *PerfectDayCronJob) Do(ctx context.Context) {
	cfg := xcontext.Configs(ctx)

	// The day under review is the one before the current logical day.
	day := dateutil.LogicalDate(time.Now(), cfg.Quest.DayResetHour).AddDate(0, 0, -1)

	for offset := 0; ; offset += cfg.Batch.ChunkSize {
		userIDs, err := job.questRepo.GetPerfectDayCandidates(ctx, day, offset, cfg.Batch.ChunkSize)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get perfect day candidates: %v", err)
			return
		}

		if len(userIDs) == 0 {
			return
		}

		for _, userID := range userIDs {
			registered, err := job.questRepo.CountRegisteredOn(ctx, userID, day)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot count registered quests of %s: %v", userID, err)
				continue
			}

			if registered == 0 {
				// Everything the user registered that day was discarded or
				// deleted, so there is nothing to be perfect about.
				continue
			}

			completed, err := job.questRepo.CountCompletedOn(ctx, userID, day)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot count completed quests of %s: %v", userID, err)
				continue
			}

			if completed < registered {
				continue
			}

			if err := job.userStatDomain.RecordPerfectDay(ctx, userID); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot record perfect day of %s: %v", userID, err)
			}
		}

		if len(userIDs) < cfg.Batch.ChunkSize {
			return
		}
	}
}

func (job *PerfectDayCronJob) RunNow() bool {
	return false
}

func (job *PerfectDayCronJob) Next() time.Time {
	return dateutil.NextReset(time.Now(), job.dayResetHour).Add(time.Minute)
}
