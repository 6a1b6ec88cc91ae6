package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/questday/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type fakeRedisClient struct {
	values map[string]string
	calls  int
}

func (f *fakeRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	_, ok := f.values[key]
	return ok, nil
}

func (f *fakeRedisClient) Del(ctx context.Context, key ...string) error {
	for _, k := range key {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeRedisClient) Set(ctx context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	return errors.New("not supported")
}

func (f *fakeRedisClient) Get(ctx context.Context, key string) (string, error) {
	f.calls++
	value, ok := f.values[key]
	if !ok {
		return "", errors.New("no such key")
	}
	return value, nil
}

func (f *fakeRedisClient) GetObj(ctx context.Context, key string, v any) error {
	return errors.New("not supported")
}

func Test_rewardProvider_QuestClearGold(t *testing.T) {
	ctx := testutil.MockContext()

	// Without redis the configured default applies.
	require.Equal(t, int64(10), NewRewardProvider(nil).QuestClearGold(ctx))

	// An override takes effect and is cached, so the second read does not hit
	// redis again.
	redisClient := &fakeRedisClient{values: map[string]string{questClearGoldKey: "25"}}
	provider := NewRewardProvider(redisClient)
	require.Equal(t, int64(25), provider.QuestClearGold(ctx))
	require.Equal(t, int64(25), provider.QuestClearGold(ctx))
	require.Equal(t, 1, redisClient.calls)

	// A garbage override falls back to the default.
	badClient := &fakeRedisClient{values: map[string]string{questClearGoldKey: "lots"}}
	require.Equal(t, int64(10), NewRewardProvider(badClient).QuestClearGold(ctx))
}
