package models

import (
	"time"
)

// Media type tags as delivered by the ingestion pipeline. Anything outside
// this set is tolerated but scores zero.
const (
	MediaTypeTextOnly = "text_only"
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
)

// Tweet represents one post by an ambassador. Engagement counters are
// refreshed periodically by the metrics collector; the rest of the row is
// immutable once the thread enrichment pass has marked it checked.
type Tweet struct {
	ID       string `json:"tweet_id" db:"tweet_id" gorm:"primaryKey;column:tweet_id"`
	AuthorID string `json:"author_id" db:"author_id" gorm:"index;not null"` // ambassador's twitter_id
	Text     string `json:"text" db:"text" gorm:"type:text"`

	// Engagement counters (latest values)
	Views     int `json:"views" db:"views" gorm:"default:0"`
	Likes     int `json:"likes" db:"likes" gorm:"default:0"`
	Retweets  int `json:"retweets" db:"retweets" gorm:"default:0"`
	Replies   int `json:"replies" db:"replies" gorm:"default:0"`
	Quotes    int `json:"quotes" db:"quotes" gorm:"default:0"`
	Bookmarks int `json:"bookmarks" db:"bookmarks" gorm:"default:0"`

	// Content classification
	MediaType       string `json:"media_type" db:"media_type" gorm:"default:text_only"`
	IsThread        bool   `json:"is_thread" db:"is_thread" gorm:"default:false"`
	IsThreadChecked bool   `json:"is_thread_checked" db:"is_thread_checked" gorm:"default:false"`

	CreatedAt time.Time `json:"createdat" db:"createdat" gorm:"column:createdat;index"`

	// Relationships
	Entities []TweetEntity    `json:"entities,omitempty" gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE"`
	Metrics  []MetricSnapshot `json:"metrics,omitempty" gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for the Tweet model
func (Tweet) TableName() string {
	return "tweets"
}
