package models

import (
	"time"
)

// Ambassador represents a tracked program member, linking their Telegram
// identity to their Twitter identity. The roster is maintained by the
// registration bot; the scoring engine only ever reads it.
type Ambassador struct {
	TelegramID       int64     `json:"telegram_id" db:"telegram_id" gorm:"primaryKey;autoIncrement:false"`
	TelegramName     string    `json:"telegram_name" db:"telegram_name" gorm:"not null"`
	TelegramUsername string    `json:"telegram_username" db:"telegram_username"`
	TwitterID        string    `json:"twitter_id" db:"twitter_id" gorm:"uniqueIndex;not null"`
	TwitterUsername  string    `json:"twitter_username" db:"twitter_username"`
	CreatedAt        time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Tweets        []Tweet              `json:"tweets,omitempty" gorm:"foreignKey:AuthorID;references:TwitterID;constraint:OnDelete:CASCADE"`
	Engagements   []Engagement         `json:"engagements,omitempty" gorm:"foreignKey:InteractingUserID;references:TwitterID;constraint:OnDelete:CASCADE"`
	DailyActivity []DailyActivity      `json:"daily_activity,omitempty" gorm:"foreignKey:UserID;references:TelegramID;constraint:OnDelete:CASCADE"`
	Contributions []ManualContribution `json:"contributions,omitempty" gorm:"foreignKey:UserID;references:TelegramID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for the Ambassador model
func (Ambassador) TableName() string {
	return "ambassadors"
}
