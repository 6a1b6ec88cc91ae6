package entity

import (
	"context"

	"github.com/questday/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Quest{},
		&DetailQuest{},
		&UserStat{},
		&Achievement{},
		&AchievementAchieveLog{},
	)
}
