package main

import (
	"os"
	"strconv"
	"time"

	"github.com/questday/backend/config"
)

func loadConfigs() config.Configs {
	return config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnvAsInt("LOG_LEVEL", 1),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "questday"),
			User:     getEnv("MYSQL_USER", "mysql"),
			Password: getEnv("MYSQL_PASSWORD", "mysql"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
		Quest: config.QuestConfigs{
			DeadlineGap:     getEnvAsDuration("QUEST_DEADLINE_GAP", 5*time.Minute),
			DayResetHour:    getEnvAsInt("QUEST_DAY_RESET_HOUR", 6),
			MaxDetailQuests: getEnvAsInt("QUEST_MAX_DETAILS", 10),
		},
		Batch: config.BatchConfigs{
			ChunkSize: getEnvAsInt("BATCH_CHUNK_SIZE", 10),
			MaxRetry:  getEnvAsInt("BATCH_MAX_RETRY", 3),
		},
		Reward: config.RewardConfigs{
			QuestClearGold: int64(getEnvAsInt("REWARD_QUEST_CLEAR_GOLD", 10)),
			CacheTTL:       getEnvAsDuration("REWARD_CACHE_TTL", time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}

	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}

	return value
}
