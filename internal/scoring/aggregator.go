package scoring

import (
	"fmt"
	"time"

	"ambassador-board/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Row is one ambassador's computed score breakdown, before or after ranking.
// Serialized directly on the as-of and replay endpoints, so the json tags
// match the leaderboard tables.
type Row struct {
	UserID          int64  `json:"user_id"`
	Rank            int    `json:"rank"`
	TelegramName    string `json:"telegram_name"`
	TwitterUsername string `json:"twitter_username"`
	models.ScoreBreakdown
}

// Aggregator computes per-ambassador scores as of a cutoff. Construct it
// over a transaction when a consistent read view matters (it always does for
// anything that gets persisted).
type Aggregator struct {
	db    *gorm.DB
	rules Rules
}

// NewAggregator creates an aggregator over the given db handle.
func NewAggregator(db *gorm.DB, rules Rules) *Aggregator {
	return &Aggregator{db: db, rules: rules}
}

// ScoresAt computes one Row per roster ambassador with all activity up to
// and including the cutoff. Ambassadors with no activity get an all-zero
// row; activity rows referencing ids outside the roster are dropped.
func (a *Aggregator) ScoresAt(cutoff time.Time) ([]Row, error) {
	var roster []models.Ambassador
	if err := a.db.Order("telegram_id").Find(&roster).Error; err != nil {
		return nil, fmt.Errorf("failed to load ambassador roster: %w", err)
	}

	// Each category is aggregated to one value per ambassador before any
	// merging, so a one-to-many source table can never fan out another.
	tweets, err := a.aggregateTweets(cutoff)
	if err != nil {
		return nil, err
	}
	engagements, err := a.aggregateEngagements(cutoff)
	if err != nil {
		return nil, err
	}
	telegram, err := a.aggregateTelegram(cutoff)
	if err != nil {
		return nil, err
	}
	contributions, err := a.aggregateContributions(cutoff)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(roster))
	for _, amb := range roster {
		row := Row{
			UserID:          amb.TelegramID,
			TelegramName:    amb.TelegramName,
			TwitterUsername: amb.TwitterUsername,
		}
		if t, ok := tweets[amb.TwitterID]; ok {
			row.CountTweetsTextOnly = t.Texts
			row.CountTweetsImage = t.Images
			row.CountTweetsThread = t.Threads
			row.CountTweetsVideo = t.Videos
			row.TotalScoreFromTweets = t.Score
		}
		if e, ok := engagements[amb.TwitterID]; ok {
			row.CountRetweetsMade = e.Shares
			row.CountCommentsMade = e.Comments
			row.TotalScoreFromEngagements = e.Score
		}
		row.TotalScoreFromTelegram = telegram[amb.TelegramID]
		if c, ok := contributions[amb.TelegramID]; ok {
			row.CountPartnerIntroduction = c.PartnerIntroductions
			row.CountHostingAMA = c.HostedAMAs
			row.CountRecruitmentAmbassador = c.AmbassadorRecruitments
			row.CountProductFeedback = c.ProductFeedbacks
			row.CountRecruitmentInvestor = c.InvestorRecruitments
			row.TotalScoreFromContributions = c.Score
		}
		row.GrandTotalScore = row.TotalScoreFromTweets +
			row.TotalScoreFromEngagements +
			row.TotalScoreFromTelegram +
			row.TotalScoreFromContributions
		rows = append(rows, row)
	}

	return rows, nil
}

// TweetTotals is an ambassador's aggregated tweet activity.
type TweetTotals struct {
	Texts   int
	Images  int
	Threads int
	Videos  int
	Score   float64
}

// aggregateTweets scores every tweet created up to the cutoff, keyed by the
// author's twitter id. Scoring happens here rather than in SQL so the rules
// stay a plain configurable struct.
func (a *Aggregator) aggregateTweets(cutoff time.Time) (map[string]TweetTotals, error) {
	var tweets []struct {
		AuthorID  string
		MediaType string
		IsThread  bool
		Views     int
	}
	err := a.db.Model(&models.Tweet{}).
		Select("author_id, media_type, is_thread, views").
		Where("createdat <= ?", cutoff).
		Scan(&tweets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tweets: %w", err)
	}

	totals := make(map[string]TweetTotals)
	for _, t := range tweets {
		agg := totals[t.AuthorID]
		switch bucketFor(t.MediaType, t.IsThread) {
		case bucketThread:
			agg.Threads++
		case bucketImage:
			agg.Images++
		case bucketVideo:
			agg.Videos++
		default:
			agg.Texts++
		}
		agg.Score += a.rules.TweetScore(t.MediaType, t.IsThread, t.Views)
		totals[t.AuthorID] = agg
	}
	return totals, nil
}

// EngagementTotals is an ambassador's aggregated cross-engagement activity.
type EngagementTotals struct {
	Comments int
	Shares   int
	Score    float64
}

// aggregateEngagements sums engagement points per interacting ambassador,
// keyed by twitter id. The count split uses the configurable action type
// sets; the score sum deliberately does not filter by type.
func (a *Aggregator) aggregateEngagements(cutoff time.Time) (map[string]EngagementTotals, error) {
	var aggs []struct {
		InteractingUserID string
		Comments          int
		Shares            int
		Score             float64
	}
	err := a.db.Model(&models.Engagement{}).
		Select(`interacting_user_id,
			COUNT(*) FILTER (WHERE action_type = ANY(?)) AS comments,
			COUNT(*) FILTER (WHERE action_type = ANY(?)) AS shares,
			COALESCE(SUM(points_awarded), 0) AS score`,
			pq.Array(a.rules.CommentActions), pq.Array(a.rules.ShareActions)).
		Where("created_at <= ?", cutoff).
		Group("interacting_user_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate engagements: %w", err)
	}

	totals := make(map[string]EngagementTotals, len(aggs))
	for _, agg := range aggs {
		totals[agg.InteractingUserID] = EngagementTotals{
			Comments: agg.Comments,
			Shares:   agg.Shares,
			Score:    agg.Score,
		}
	}
	return totals, nil
}

// aggregateTelegram sums daily activity scores per ambassador, keyed by
// telegram id. A day counts when it starts on or before the cutoff.
func (a *Aggregator) aggregateTelegram(cutoff time.Time) (map[int64]float64, error) {
	var aggs []struct {
		UserID int64
		Score  float64
	}
	err := a.db.Model(&models.DailyActivity{}).
		Select("user_id, COALESCE(SUM(total_day_score), 0) AS score").
		Where("activity_date <= ?", cutoff).
		Group("user_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate telegram activity: %w", err)
	}

	totals := make(map[int64]float64, len(aggs))
	for _, agg := range aggs {
		totals[agg.UserID] = agg.Score
	}
	return totals, nil
}

// ContributionTotals is an ambassador's aggregated manual contributions.
type ContributionTotals struct {
	PartnerIntroductions   int
	HostedAMAs             int
	AmbassadorRecruitments int
	ProductFeedbacks       int
	InvestorRecruitments   int
	Score                  float64
}

// aggregateContributions sums contribution points per ambassador, keyed by
// telegram id. Unknown contribution types add to the score but are not
// broken out into a count.
func (a *Aggregator) aggregateContributions(cutoff time.Time) (map[int64]ContributionTotals, error) {
	var aggs []struct {
		UserID                 int64
		PartnerIntroductions   int
		HostedAmas             int
		AmbassadorRecruitments int
		ProductFeedbacks       int
		InvestorRecruitments   int
		Score                  float64
	}
	err := a.db.Model(&models.ManualContribution{}).
		Select(`user_id,
			COUNT(*) FILTER (WHERE contribution_type = ?) AS partner_introductions,
			COUNT(*) FILTER (WHERE contribution_type = ?) AS hosted_amas,
			COUNT(*) FILTER (WHERE contribution_type = ?) AS ambassador_recruitments,
			COUNT(*) FILTER (WHERE contribution_type = ?) AS product_feedbacks,
			COUNT(*) FILTER (WHERE contribution_type = ?) AS investor_recruitments,
			COALESCE(SUM(points_awarded), 0) AS score`,
			models.ContributionPartnerIntroduction,
			models.ContributionHostingAMA,
			models.ContributionRecruitmentAmbassador,
			models.ContributionProductFeedback,
			models.ContributionRecruitmentInvestor).
		Where("created_at <= ?", cutoff).
		Group("user_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate contributions: %w", err)
	}

	totals := make(map[int64]ContributionTotals, len(aggs))
	for _, agg := range aggs {
		totals[agg.UserID] = ContributionTotals{
			PartnerIntroductions:   agg.PartnerIntroductions,
			HostedAMAs:             agg.HostedAmas,
			AmbassadorRecruitments: agg.AmbassadorRecruitments,
			ProductFeedbacks:       agg.ProductFeedbacks,
			InvestorRecruitments:   agg.InvestorRecruitments,
			Score:                  agg.Score,
		}
	}
	return totals, nil
}
