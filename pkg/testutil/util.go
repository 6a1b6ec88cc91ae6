package testutil

import (
	"context"
	"time"

	"github.com/questday/backend/config"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/pkg/logger"
	"github.com/questday/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		LogLevel: logger.SILENCE,
		Quest: config.QuestConfigs{
			DeadlineGap:     5 * time.Minute,
			DayResetHour:    6,
			MaxDetailQuests: 10,
		},
		Batch: config.BatchConfigs{
			ChunkSize: 10,
			MaxRetry:  3,
		},
		Reward: config.RewardConfigs{
			QuestClearGold: 10,
			CacheTTL:       time.Minute,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(cfg.LogLevel))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = MockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
