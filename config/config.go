package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel int

	Database DatabaseConfigs
	Redis    RedisConfigs
	Kafka    KafkaConfigs
	Quest    QuestConfigs
	Batch    BatchConfigs
	Reward   RewardConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type QuestConfigs struct {
	// DeadlineGap is the margin a deadline must keep from both the current
	// time and the next day-reset boundary.
	DeadlineGap time.Duration

	// DayResetHour is the local hour at which the logical day rolls over.
	DayResetHour int

	// MaxDetailQuests bounds the number of detail quests per quest.
	MaxDetailQuests int
}

type BatchConfigs struct {
	ChunkSize int
	MaxRetry  int
}

type RewardConfigs struct {
	// QuestClearGold is the fallback gold reward when no override is found in
	// the reward cache.
	QuestClearGold int64

	// CacheTTL bounds how long reward overrides read from redis are trusted.
	CacheTTL time.Duration
}
