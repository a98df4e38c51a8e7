package scoring

import (
	"database/sql"
	"fmt"
	"time"

	"ambassador-board/internal/models"

	"gorm.io/gorm"
)

// DaySnapshot is one day of replayed leaderboard history: the ranked
// cumulative scores of every roster ambassador as of end of that day.
type DaySnapshot struct {
	Date time.Time // midnight UTC
	Rows []Row
}

// Replayer reconstructs the full day-by-day leaderboard history from the raw
// activity tables. The cumulative value it produces for ambassador A at day D
// equals Aggregator.ScoresAt(end of day D) for A; the derivation is a running
// sum of per-day deltas instead of a full recompute per day.
type Replayer struct {
	db    *gorm.DB
	rules Rules
}

// NewReplayer creates a replayer over the given db handle.
func NewReplayer(db *gorm.DB, rules Rules) *Replayer {
	return &Replayer{db: db, rules: rules}
}

// BuildHistory replays every calendar day from the first observed activity
// across all four source tables through today (UTC). Every roster ambassador
// appears on every day, with zero deltas where they were inactive. Returns
// nil when there is no activity at all.
func (r *Replayer) BuildHistory() ([]DaySnapshot, error) {
	start, ok, err := r.observedStart()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return r.buildRange(start, todayUTC())
}

// BuildAmbassadorHistory is the single-ambassador diagnostic variant: it
// replays from the first observed activity through that ambassador's last
// active day, returning only their rows. Ranks are still computed against
// the full roster so the trend matches the real history table.
func (r *Replayer) BuildAmbassadorHistory(userID int64) ([]DaySnapshot, error) {
	start, ok, err := r.observedStart()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	end, ok, err := r.lastActiveDay(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	full, err := r.buildRange(start, end)
	if err != nil {
		return nil, err
	}

	history := make([]DaySnapshot, 0, len(full))
	for _, day := range full {
		for _, row := range day.Rows {
			if row.UserID == userID {
				history = append(history, DaySnapshot{Date: day.Date, Rows: []Row{row}})
				break
			}
		}
	}
	return history, nil
}

// buildRange does the actual replay. Each category is pre-aggregated to one
// delta per (day, ambassador) before anything is merged; joining the raw
// one-to-many tables first would fan out and over-count.
func (r *Replayer) buildRange(start, end time.Time) ([]DaySnapshot, error) {
	var roster []models.Ambassador
	if err := r.db.Order("telegram_id").Find(&roster).Error; err != nil {
		return nil, fmt.Errorf("failed to load ambassador roster: %w", err)
	}

	tweetDeltas, err := r.tweetDeltas()
	if err != nil {
		return nil, err
	}
	engagementDeltas, err := r.engagementDeltas()
	if err != nil {
		return nil, err
	}
	telegramDeltas, err := r.telegramDeltas()
	if err != nil {
		return nil, err
	}
	contributionDeltas, err := r.contributionDeltas()
	if err != nil {
		return nil, err
	}

	// Running cumulative breakdown per ambassador, advanced day by day.
	cumulative := make(map[int64]*Row, len(roster))
	for _, amb := range roster {
		cumulative[amb.TelegramID] = &Row{
			UserID:          amb.TelegramID,
			TelegramName:    amb.TelegramName,
			TwitterUsername: amb.TwitterUsername,
		}
	}

	var history []DaySnapshot
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := dayKey(day)

		for _, amb := range roster {
			row := cumulative[amb.TelegramID]
			if t, ok := tweetDeltas[key][amb.TwitterID]; ok {
				row.CountTweetsTextOnly += t.Texts
				row.CountTweetsImage += t.Images
				row.CountTweetsThread += t.Threads
				row.CountTweetsVideo += t.Videos
				row.TotalScoreFromTweets += t.Score
			}
			if e, ok := engagementDeltas[key][amb.TwitterID]; ok {
				row.CountRetweetsMade += e.Shares
				row.CountCommentsMade += e.Comments
				row.TotalScoreFromEngagements += e.Score
			}
			row.TotalScoreFromTelegram += telegramDeltas[key][amb.TelegramID]
			if c, ok := contributionDeltas[key][amb.TelegramID]; ok {
				row.CountPartnerIntroduction += c.PartnerIntroductions
				row.CountHostingAMA += c.HostedAMAs
				row.CountRecruitmentAmbassador += c.AmbassadorRecruitments
				row.CountProductFeedback += c.ProductFeedbacks
				row.CountRecruitmentInvestor += c.InvestorRecruitments
				row.TotalScoreFromContributions += c.Score
			}
			row.GrandTotalScore = row.TotalScoreFromTweets +
				row.TotalScoreFromEngagements +
				row.TotalScoreFromTelegram +
				row.TotalScoreFromContributions
		}

		dayRows := make([]Row, 0, len(roster))
		for _, amb := range roster {
			dayRows = append(dayRows, *cumulative[amb.TelegramID])
		}
		AssignRanks(dayRows)

		history = append(history, DaySnapshot{Date: day, Rows: dayRows})
	}

	return history, nil
}

// tweetDeltas aggregates tweet counts and scores per (day, author).
func (r *Replayer) tweetDeltas() (map[string]map[string]TweetTotals, error) {
	var tweets []struct {
		AuthorID  string
		MediaType string
		IsThread  bool
		Views     int
		Createdat time.Time
	}
	err := r.db.Model(&models.Tweet{}).
		Select("author_id, media_type, is_thread, views, createdat").
		Scan(&tweets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tweets for replay: %w", err)
	}

	deltas := make(map[string]map[string]TweetTotals)
	for _, t := range tweets {
		key := dayKey(t.Createdat)
		if deltas[key] == nil {
			deltas[key] = make(map[string]TweetTotals)
		}
		agg := deltas[key][t.AuthorID]
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
		agg.Score += r.rules.TweetScore(t.MediaType, t.IsThread, t.Views)
		deltas[key][t.AuthorID] = agg
	}
	return deltas, nil
}

// engagementDeltas aggregates engagement counts and points per (day,
// interacting ambassador), with the same action type semantics as the
// aggregator: the score sums everything, the counts follow the rule sets.
func (r *Replayer) engagementDeltas() (map[string]map[string]EngagementTotals, error) {
	var engagements []models.Engagement
	if err := r.db.Find(&engagements).Error; err != nil {
		return nil, fmt.Errorf("failed to load engagements for replay: %w", err)
	}

	deltas := make(map[string]map[string]EngagementTotals)
	for _, e := range engagements {
		key := dayKey(e.CreatedAt)
		if deltas[key] == nil {
			deltas[key] = make(map[string]EngagementTotals)
		}
		agg := deltas[key][e.InteractingUserID]
		if contains(r.rules.CommentActions, e.ActionType) {
			agg.Comments++
		}
		if contains(r.rules.ShareActions, e.ActionType) {
			agg.Shares++
		}
		agg.Score += e.PointsAwarded
		deltas[key][e.InteractingUserID] = agg
	}
	return deltas, nil
}

// telegramDeltas sums activity scores strictly per (day, user). The table
// should hold one row per pair, but summing here means a duplicated day can
// never produce two history rows.
func (r *Replayer) telegramDeltas() (map[string]map[int64]float64, error) {
	var activity []models.DailyActivity
	if err := r.db.Find(&activity).Error; err != nil {
		return nil, fmt.Errorf("failed to load daily activity for replay: %w", err)
	}

	deltas := make(map[string]map[int64]float64)
	for _, a := range activity {
		key := dayKey(a.ActivityDate)
		if deltas[key] == nil {
			deltas[key] = make(map[int64]float64)
		}
		deltas[key][a.UserID] += a.TotalDayScore
	}
	return deltas, nil
}

// contributionDeltas aggregates manual contributions per (day, user).
func (r *Replayer) contributionDeltas() (map[string]map[int64]ContributionTotals, error) {
	var contributions []models.ManualContribution
	if err := r.db.Find(&contributions).Error; err != nil {
		return nil, fmt.Errorf("failed to load contributions for replay: %w", err)
	}

	deltas := make(map[string]map[int64]ContributionTotals)
	for _, c := range contributions {
		key := dayKey(c.CreatedAt)
		if deltas[key] == nil {
			deltas[key] = make(map[int64]ContributionTotals)
		}
		agg := deltas[key][c.UserID]
		switch c.ContributionType {
		case models.ContributionPartnerIntroduction:
			agg.PartnerIntroductions++
		case models.ContributionHostingAMA:
			agg.HostedAMAs++
		case models.ContributionRecruitmentAmbassador:
			agg.AmbassadorRecruitments++
		case models.ContributionProductFeedback:
			agg.ProductFeedbacks++
		case models.ContributionRecruitmentInvestor:
			agg.InvestorRecruitments++
		}
		agg.Score += c.PointsAwarded
		deltas[key][c.UserID] = agg
	}
	return deltas, nil
}

// observedStart returns the earliest activity date across all four source
// tables, or ok=false when every table is empty.
func (r *Replayer) observedStart() (time.Time, bool, error) {
	mins := []struct {
		model  interface{}
		column string
	}{
		{&models.Tweet{}, "createdat"},
		{&models.Engagement{}, "created_at"},
		{&models.DailyActivity{}, "activity_date"},
		{&models.ManualContribution{}, "created_at"},
	}

	var start time.Time
	found := false
	for _, m := range mins {
		var nt sql.NullTime
		row := r.db.Model(m.model).Select("MIN(" + m.column + ")").Row()
		if err := row.Scan(&nt); err != nil {
			return time.Time{}, false, fmt.Errorf("failed to find first activity date: %w", err)
		}
		if !nt.Valid {
			continue
		}
		day := startOfDayUTC(nt.Time)
		if !found || day.Before(start) {
			start = day
			found = true
		}
	}
	return start, found, nil
}

// lastActiveDay returns the latest activity date for one ambassador across
// all four source tables, or ok=false when they have no activity.
func (r *Replayer) lastActiveDay(userID int64) (time.Time, bool, error) {
	var amb models.Ambassador
	if err := r.db.First(&amb, "telegram_id = ?", userID).Error; err != nil {
		return time.Time{}, false, fmt.Errorf("failed to load ambassador %d: %w", userID, err)
	}

	maxes := []struct {
		model  interface{}
		column string
		where  string
		arg    interface{}
	}{
		{&models.Tweet{}, "createdat", "author_id = ?", amb.TwitterID},
		{&models.Engagement{}, "created_at", "interacting_user_id = ?", amb.TwitterID},
		{&models.DailyActivity{}, "activity_date", "user_id = ?", amb.TelegramID},
		{&models.ManualContribution{}, "created_at", "user_id = ?", amb.TelegramID},
	}

	var end time.Time
	found := false
	for _, m := range maxes {
		var nt sql.NullTime
		row := r.db.Model(m.model).Select("MAX("+m.column+")").Where(m.where, m.arg).Row()
		if err := row.Scan(&nt); err != nil {
			return time.Time{}, false, fmt.Errorf("failed to find last activity date: %w", err)
		}
		if !nt.Valid {
			continue
		}
		day := startOfDayUTC(nt.Time)
		if !found || day.After(end) {
			end = day
			found = true
		}
	}
	return end, found, nil
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func startOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the snapshot timestamp used for a day's history rows.
func EndOfDay(day time.Time) time.Time {
	u := day.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 0, time.UTC)
}

func todayUTC() time.Time {
	return startOfDayUTC(time.Now())
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
