// Package models contains all data models for the ambassador-board application
package models

import (
	"gorm.io/gorm"
)

// AllModels returns a slice of all model types for database migrations
func AllModels() []interface{} {
	return []interface{}{
		&Ambassador{},
		&Tweet{},
		&TweetEntity{},
		&MetricSnapshot{},
		&DailyActivity{},
		&Engagement{},
		&ManualContribution{},
		&LeaderboardEntry{},
		&LeaderboardSnapshot{},
	}
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
