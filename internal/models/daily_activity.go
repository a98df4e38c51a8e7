package models

import (
	"time"
)

// DailyActivity holds one ambassador's aggregate Telegram activity score for
// a single calendar day, upserted by the chat-activity collector. Details
// carries the per-session breakdown the collector computed, as raw JSON.
type DailyActivity struct {
	ID            uint      `json:"id" db:"id" gorm:"primaryKey"`
	UserID        int64     `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_day;not null"` // ambassador's telegram_id
	ActivityDate  time.Time `json:"activity_date" db:"activity_date" gorm:"uniqueIndex:idx_user_day;type:date;not null"`
	TotalDayScore float64   `json:"total_day_score" db:"total_day_score" gorm:"default:0"`
	Details       string    `json:"details" db:"details" gorm:"type:jsonb;default:'{}'"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for the DailyActivity model
func (DailyActivity) TableName() string {
	return "telegram_daily_activity"
}
