package models

import (
	"time"
)

// MetricSnapshot is a point-in-time copy of a tweet's engagement counters,
// appended by the metrics collector so trends can be reconstructed later.
// Rows are never updated or deleted except by tweet cascade.
type MetricSnapshot struct {
	ID         uint      `json:"id" db:"id" gorm:"primaryKey"`
	TweetID    string    `json:"tweet_id" db:"tweet_id" gorm:"index;not null"`
	CapturedAt time.Time `json:"captured_at" db:"captured_at" gorm:"index;autoCreateTime"`

	Views     int `json:"views" db:"views" gorm:"default:0"`
	Likes     int `json:"likes" db:"likes" gorm:"default:0"`
	Retweets  int `json:"retweets" db:"retweets" gorm:"default:0"`
	Replies   int `json:"replies" db:"replies" gorm:"default:0"`
	Quotes    int `json:"quotes" db:"quotes" gorm:"default:0"`
	Bookmarks int `json:"bookmarks" db:"bookmarks" gorm:"default:0"`
}

// TableName sets the table name for the MetricSnapshot model
func (MetricSnapshot) TableName() string {
	return "tweet_metrics_history"
}
