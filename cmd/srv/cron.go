package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/questday/backend/internal/domain/cron"
	"github.com/questday/backend/pkg/kafka"
	"github.com/questday/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadContext()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()

	s.publisher = kafka.NewPublisher("cron", []string{xcontext.Configs(s.ctx).Kafka.Addr})
	defer func() {
		if err := s.publisher.Stop(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot stop publisher: %v", err)
		}
	}()

	s.loadDomains()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewFailOverdueQuestCronJob(s.questRepo, s.publisher))
	cronJobManager.Register(cron.NewPerfectDayCronJob(
		s.questRepo, s.userStatDomain, xcontext.Configs(s.ctx).Quest.DayResetHour))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cronJobManager.Cancel(s.ctx)
	}()

	cronJobManager.Start(s.ctx)

	return nil
}
