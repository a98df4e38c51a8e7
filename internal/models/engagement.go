package models

import (
	"time"
)

// Action types recorded by the cross-engagement tracker. The scoring engine
// treats the set as open-ended; these are the ones the tracker writes today.
const (
	ActionTypeReply          = "reply"
	ActionTypeComment        = "comment"
	ActionTypeRetweetOrQuote = "retweet_or_quote"
)

// Engagement records one ambassador interacting with another ambassador's
// tweet. The unique index means a given ambassador is credited at most once
// per action type per tweet, no matter how often the tracker re-runs.
type Engagement struct {
	ID                uint      `json:"id" db:"id" gorm:"primaryKey"`
	TweetID           string    `json:"tweet_id" db:"tweet_id" gorm:"uniqueIndex:idx_engagement;not null"`
	TweetAuthorID     string    `json:"tweet_author_id" db:"tweet_author_id"`
	InteractingUserID string    `json:"interacting_user_id" db:"interacting_user_id" gorm:"uniqueIndex:idx_engagement;index;not null"` // ambassador's twitter_id
	ActionType        string    `json:"action_type" db:"action_type" gorm:"uniqueIndex:idx_engagement;not null"`
	PointsAwarded     float64   `json:"points_awarded" db:"points_awarded" gorm:"default:0"`
	CreatedAt         time.Time `json:"created_at" db:"created_at" gorm:"index"`
}

// TableName sets the table name for the Engagement model
func (Engagement) TableName() string {
	return "ambassador_engagements"
}
