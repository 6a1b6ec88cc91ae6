package domain

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/questday/backend/pkg/xcontext"
	"github.com/questday/backend/pkg/xredis"
)

const questClearGoldKey = "reward:quest_clear_gold"

// RewardProvider supplies the externally managed reward amounts. Operators
// override the defaults through redis; this core only reads them.
type RewardProvider interface {
	QuestClearGold(ctx context.Context) int64
}

type rewardProvider struct {
	redisClient xredis.Client

	mutex      sync.Mutex
	cachedGold int64
	validUntil time.Time
}

func NewRewardProvider(redisClient xredis.Client) *rewardProvider {
	return &rewardProvider{redisClient: redisClient}
}

// QuestClearGold returns the gold paid for completing a quest. The override is
// cached for Reward.CacheTTL, and any problem reading it falls back to the
// configured default, so reward payout never fails a completion.
func (p *rewardProvider) QuestClearGold(ctx context.Context) int64 {
	cfg := xcontext.Configs(ctx).Reward
	if p.redisClient == nil {
		return cfg.QuestClearGold
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if time.Now().Before(p.validUntil) {
		return p.cachedGold
	}

	gold := cfg.QuestClearGold
	value, err := p.redisClient.Get(ctx, questClearGoldKey)
	if err != nil {
		if !xredis.IsNil(err) {
			xcontext.Logger(ctx).Warnf("Cannot read quest gold reward override: %v", err)
		}
	} else if parsed, err := strconv.ParseInt(value, 10, 64); err != nil {
		xcontext.Logger(ctx).Warnf("Invalid quest gold reward override %q: %v", value, err)
	} else {
		gold = parsed
	}

	p.cachedGold = gold
	p.validUntil = time.Now().Add(cfg.CacheTTL)

	return gold
}
