package models

import (
	"time"
)

// Entity types extracted from tweet text.
const (
	EntityTypeMention = "mention"
	EntityTypeHashtag = "hashtag"
	EntityTypeURL     = "url"
)

// TweetEntity is a mention, hashtag or link found inside a tweet. The
// ingestion pipeline writes these; they are exposed read-only for reporting.
type TweetEntity struct {
	ID              uint      `json:"id" db:"id" gorm:"primaryKey"`
	TweetID         string    `json:"tweet_id" db:"tweet_id" gorm:"uniqueIndex:idx_tweet_entity;not null"`
	EntityType      string    `json:"entity_type" db:"entity_type" gorm:"uniqueIndex:idx_tweet_entity;not null"`
	EntityText      string    `json:"entity_text" db:"entity_text" gorm:"uniqueIndex:idx_tweet_entity;not null"`
	MentionedUserID string    `json:"mentioned_user_id" db:"mentioned_user_id"`
	ExpandedURL     string    `json:"expanded_url" db:"expanded_url"`
	CreatedAt       time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for the TweetEntity model
func (TweetEntity) TableName() string {
	return "tweet_entities"
}
