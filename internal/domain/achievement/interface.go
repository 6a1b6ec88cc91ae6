package achievement

import (
	"context"

	"github.com/questday/backend/internal/entity"
)

// CurrentValueResolver maps one achievement type to the user's current value
// for it. New achievement types plug in here without touching the unlock
// engine.
type CurrentValueResolver interface {
	// Type returns the achievement type this resolver serves.
	Type() entity.AchievementType

	// CurrentValue returns the value compared against the achievement target.
	CurrentValue(ctx context.Context, userID string) (int64, error)

	// StatColumn names the user-stat column backing the bulk rescan query.
	StatColumn() string
}
