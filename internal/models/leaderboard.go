package models

import (
	"time"
)

// ScoreBreakdown carries the per-category counts and sub-totals shared by the
// live leaderboard and the history table. The grand total is always the sum
// of the four sub-totals; the scoring engine enforces this on every write.
type ScoreBreakdown struct {
	// Tweets. The four bucket counts are mutually exclusive: a thread counts
	// only in the thread bucket, regardless of its media type.
	CountTweetsTextOnly  int     `json:"count_tweets_text_only" db:"count_tweets_text_only" gorm:"default:0"`
	CountTweetsImage     int     `json:"count_tweets_image" db:"count_tweets_image" gorm:"default:0"`
	CountTweetsThread    int     `json:"count_tweets_thread" db:"count_tweets_thread" gorm:"default:0"`
	CountTweetsVideo     int     `json:"count_tweets_video" db:"count_tweets_video" gorm:"default:0"`
	TotalScoreFromTweets float64 `json:"total_score_from_tweets" db:"total_score_from_tweets" gorm:"default:0"`

	// Cross-engagements made by this ambassador on others' tweets
	CountRetweetsMade         int     `json:"count_retweets_made" db:"count_retweets_made" gorm:"default:0"`
	CountCommentsMade         int     `json:"count_comments_made" db:"count_comments_made" gorm:"default:0"`
	TotalScoreFromEngagements float64 `json:"total_score_from_engagements" db:"total_score_from_engagements" gorm:"default:0"`

	// Telegram chat activity
	TotalScoreFromTelegram float64 `json:"total_score_from_telegram" db:"total_score_from_telegram" gorm:"default:0"`

	// Manual contributions
	CountPartnerIntroduction    int     `json:"count_partner_introduction" db:"count_partner_introduction" gorm:"default:0"`
	CountHostingAMA             int     `json:"count_hosting_ama" db:"count_hosting_ama" gorm:"default:0"`
	CountRecruitmentAmbassador  int     `json:"count_recruitment_ambassador" db:"count_recruitment_ambassador" gorm:"default:0"`
	CountProductFeedback        int     `json:"count_product_feedback" db:"count_product_feedback" gorm:"default:0"`
	CountRecruitmentInvestor    int     `json:"count_recruitment_investor" db:"count_recruitment_investor" gorm:"default:0"`
	TotalScoreFromContributions float64 `json:"total_score_from_contributions" db:"total_score_from_contributions" gorm:"default:0"`

	GrandTotalScore float64 `json:"grand_total_score" db:"grand_total_score" gorm:"default:0"`
}

// LeaderboardEntry is one row of the live leaderboard, overwritten wholesale
// on every recompute.
type LeaderboardEntry struct {
	UserID          int64     `json:"user_id" db:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Rank            int       `json:"rank" db:"rank" gorm:"not null"`
	TelegramName    string    `json:"telegram_name" db:"telegram_name"`
	TwitterUsername string    `json:"twitter_username" db:"twitter_username"`
	ScoreBreakdown  `gorm:"embedded"`
	LastUpdated     time.Time `json:"last_updated" db:"last_updated"`
}

// TableName sets the table name for the LeaderboardEntry model
func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}

// LeaderboardSnapshot is one (ambassador, day) row of the leaderboard
// history. Append-only, except that a full rebuild discards and regenerates
// the whole table.
type LeaderboardSnapshot struct {
	ID                uint      `json:"id" db:"id" gorm:"primaryKey"`
	SnapshotTimestamp time.Time `json:"snapshot_timestamp" db:"snapshot_timestamp" gorm:"uniqueIndex:idx_user_snapshot;index;not null"`
	UserID            int64     `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_snapshot;not null"`
	Rank              int       `json:"rank" db:"rank" gorm:"not null"`
	TelegramName      string    `json:"telegram_name" db:"telegram_name"`
	TwitterUsername   string    `json:"twitter_username" db:"twitter_username"`
	ScoreBreakdown    `gorm:"embedded"`
}

// TableName sets the table name for the LeaderboardSnapshot model
func (LeaderboardSnapshot) TableName() string {
	return "leaderboard_history"
}
