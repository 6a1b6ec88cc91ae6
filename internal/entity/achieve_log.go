package entity

import "time"

// AchievementAchieveLog records one unlock. The composite primary key is the
// concurrency guard: a racing duplicate insert hits the key and is absorbed
// as success instead of taking a lock.
type AchievementAchieveLog struct {
	AchievementID string      `gorm:"primaryKey"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	AchievedAt time.Time
}
