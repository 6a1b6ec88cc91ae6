package main

import (
	"context"

	"github.com/questday/backend/internal/domain"
	"github.com/questday/backend/internal/domain/achievement"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/logger"
	"github.com/questday/backend/pkg/pubsub"
	"github.com/questday/backend/pkg/xcontext"
	"github.com/questday/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo        repository.UserRepository
	questRepo       repository.QuestRepository
	detailQuestRepo repository.DetailQuestRepository
	userStatRepo    repository.UserStatRepository
	achievementRepo repository.AchievementRepository
	achieveLogRepo  repository.AchieveLogRepository

	userStatDomain    domain.UserStatDomain
	questDomain       domain.QuestDomain
	achievementDomain domain.AchievementDomain
	achievementEngine *achievement.Engine
	rewardProvider    domain.RewardProvider

	publisher   pubsub.Publisher
	redisClient xredis.Client
}

func (s *srv) loadContext() {
	configs := loadConfigs()
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, configs)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(configs.LogLevel))
}

func (s *srv) newDatabase() *gorm.DB {
	dbConfigs := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(dbConfigs.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis, reward overrides disabled: %v", err)
		s.redisClient = nil
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.questRepo = repository.NewQuestRepository()
	s.detailQuestRepo = repository.NewDetailQuestRepository()
	s.userStatRepo = repository.NewUserStatRepository()
	s.achievementRepo = repository.NewAchievementRepository()
	s.achieveLogRepo = repository.NewAchieveLogRepository()
}

func (s *srv) loadDomains() {
	s.achievementEngine = achievement.NewEngine(
		s.achievementRepo,
		s.achieveLogRepo,
		s.publisher,
		achievement.NewStatResolvers(s.userStatRepo)...,
	)

	s.rewardProvider = domain.NewRewardProvider(s.redisClient)
	s.userStatDomain = domain.NewUserStatDomain(s.userStatRepo, s.achievementEngine)
	s.questDomain = domain.NewQuestDomain(
		s.questRepo, s.detailQuestRepo, s.userStatDomain, s.rewardProvider, s.publisher)
	s.achievementDomain = domain.NewAchievementDomain(
		s.achievementRepo, s.achieveLogRepo, s.userStatRepo, s.achievementEngine)
}
