package services

import (
	"testing"
	"time"

	"ambassador-board/internal/models"
	"ambassador-board/internal/scoring"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// daysAgo returns midnight UTC n days before today.
func daysAgo(n int) time.Time {
	now := time.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -n)
}

// seedFixture writes a small three-ambassador scenario:
//
//	Alice: video tweet (1500 views) and telegram activity two days ago,
//	       a text thread yesterday, a retweet today
//	Bob:   image tweet, a reply on Alice's tweet and a hosting_ama
//	       contribution yesterday
//	Carol: on the roster, no activity at all
func seedFixture(t *testing.T, db *gorm.DB) {
	ambassadors := []models.Ambassador{
		{TelegramID: 1, TelegramName: "Alice", TwitterID: "tw-alice", TwitterUsername: "alice"},
		{TelegramID: 2, TelegramName: "Bob", TwitterID: "tw-bob", TwitterUsername: "bob"},
		{TelegramID: 3, TelegramName: "Carol", TwitterID: "tw-carol", TwitterUsername: "carol"},
	}
	if err := db.Create(&ambassadors).Error; err != nil {
		t.Fatalf("Failed to seed ambassadors: %v", err)
	}

	tweets := []models.Tweet{
		{ID: "t1", AuthorID: "tw-alice", MediaType: models.MediaTypeVideo, Views: 1500, CreatedAt: daysAgo(2).Add(10 * time.Hour)},
		{ID: "t2", AuthorID: "tw-alice", MediaType: models.MediaTypeTextOnly, IsThread: true, Views: 100, CreatedAt: daysAgo(1).Add(9 * time.Hour)},
		{ID: "t3", AuthorID: "tw-bob", MediaType: models.MediaTypeImage, Views: 999, CreatedAt: daysAgo(1).Add(11 * time.Hour)},
	}
	if err := db.Create(&tweets).Error; err != nil {
		t.Fatalf("Failed to seed tweets: %v", err)
	}

	activity := models.DailyActivity{
		UserID: 1, ActivityDate: daysAgo(2), TotalDayScore: 5, Details: "{}",
	}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("Failed to seed daily activity: %v", err)
	}

	engagements := []models.Engagement{
		{TweetID: "t1", TweetAuthorID: "tw-alice", InteractingUserID: "tw-bob",
			ActionType: models.ActionTypeReply, PointsAwarded: 2, CreatedAt: daysAgo(1).Add(12 * time.Hour)},
		{TweetID: "t3", TweetAuthorID: "tw-bob", InteractingUserID: "tw-alice",
			ActionType: models.ActionTypeRetweetOrQuote, PointsAwarded: 3, CreatedAt: time.Now().UTC().Add(-time.Minute)},
	}
	if err := db.Create(&engagements).Error; err != nil {
		t.Fatalf("Failed to seed engagements: %v", err)
	}

	contributionService := NewContributionService(db)
	if _, err := contributionService.Record(2, models.ContributionHostingAMA, 20, "Hosted the weekly AMA", "test-admin"); err != nil {
		t.Fatalf("Failed to seed contribution: %v", err)
	}
	// Backdate it so the replay tests see it on a known day
	if err := db.Model(&models.ManualContribution{}).
		Where("user_id = ?", 2).
		Update("created_at", daysAgo(1).Add(15*time.Hour)).Error; err != nil {
		t.Fatalf("Failed to backdate contribution: %v", err)
	}
}

func TestRecomputeAsOf(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	service := NewLeaderboardService(db, scoring.DefaultRules())

	rows, err := service.RecomputeAsOf(time.Now().UTC())
	if err != nil {
		t.Fatalf("RecomputeAsOf failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	t.Run("per-category totals", func(t *testing.T) {
		alice := rows[0]
		assert.Equal(t, int64(1), alice.UserID)
		// video 1500 views = 24, thread = 10
		assert.Equal(t, 34.0, alice.TotalScoreFromTweets)
		assert.Equal(t, 1, alice.CountTweetsVideo)
		assert.Equal(t, 1, alice.CountTweetsThread)
		assert.Equal(t, 0, alice.CountTweetsTextOnly)
		assert.Equal(t, 5.0, alice.TotalScoreFromTelegram)
		assert.Equal(t, 3.0, alice.TotalScoreFromEngagements)
		assert.Equal(t, 1, alice.CountRetweetsMade)
		assert.Equal(t, 0, alice.CountCommentsMade)
		assert.Equal(t, 42.0, alice.GrandTotalScore)

		bob := rows[1]
		assert.Equal(t, int64(2), bob.UserID)
		assert.Equal(t, 10.0, bob.TotalScoreFromTweets)
		assert.Equal(t, 1, bob.CountTweetsImage)
		assert.Equal(t, 2.0, bob.TotalScoreFromEngagements)
		assert.Equal(t, 1, bob.CountCommentsMade)
		assert.Equal(t, 20.0, bob.TotalScoreFromContributions)
		assert.Equal(t, 1, bob.CountHostingAMA)
		assert.Equal(t, 32.0, bob.GrandTotalScore)
	})

	t.Run("grand total decomposes into the four categories", func(t *testing.T) {
		for _, row := range rows {
			sum := row.TotalScoreFromTweets + row.TotalScoreFromEngagements +
				row.TotalScoreFromTelegram + row.TotalScoreFromContributions
			assert.Equal(t, sum, row.GrandTotalScore, "ambassador %d", row.UserID)
		}
	})

	t.Run("inactive ambassador gets an all-zero row", func(t *testing.T) {
		carol := rows[2]
		assert.Equal(t, int64(3), carol.UserID)
		assert.Equal(t, 0.0, carol.GrandTotalScore)
		assert.Equal(t, 3, carol.Rank)
	})

	t.Run("ranks are dense over distinct totals", func(t *testing.T) {
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, 2, rows[1].Rank)
	})
}

func TestRecomputeAsOfCutoff(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	service := NewLeaderboardService(db, scoring.DefaultRules())

	// As of end of two days ago only Alice's first tweet and her telegram
	// day are in scope.
	rows, err := service.RecomputeAsOf(scoring.EndOfDay(daysAgo(2)))
	if err != nil {
		t.Fatalf("RecomputeAsOf failed: %v", err)
	}

	assert.Equal(t, 29.0, rows[0].GrandTotalScore) // 24 tweet + 5 telegram
	assert.Equal(t, "Alice", rows[0].TelegramName)
	assert.Equal(t, 0.0, rows[1].GrandTotalScore)
	assert.Equal(t, "Bob", rows[1].TelegramName) // zero tie ordered by name
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, 0.0, rows[2].GrandTotalScore)
	assert.Equal(t, 2, rows[2].Rank) // Bob and Carol share the rank

	// Moving the cutoff forward never lowers anyone's total
	later, err := service.RecomputeAsOf(time.Now().UTC())
	if err != nil {
		t.Fatalf("RecomputeAsOf failed: %v", err)
	}
	earlierByUser := map[int64]float64{}
	for _, row := range rows {
		earlierByUser[row.UserID] = row.GrandTotalScore
	}
	for _, row := range later {
		assert.GreaterOrEqual(t, row.GrandTotalScore, earlierByUser[row.UserID])
	}
}

func TestRecomputeNow(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	service := NewLeaderboardService(db, scoring.DefaultRules())

	var broadcasted []models.LeaderboardEntry
	service.SetBroadcast(func(entries []models.LeaderboardEntry) {
		broadcasted = entries
	})

	if err := service.RecomputeNow(); err != nil {
		t.Fatalf("RecomputeNow failed: %v", err)
	}

	entries, err := service.CurrentLeaderboard()
	if err != nil {
		t.Fatalf("CurrentLeaderboard failed: %v", err)
	}
	assert.Len(t, entries, 3)
	assert.Equal(t, "Alice", entries[0].TelegramName)
	assert.Equal(t, 42.0, entries[0].GrandTotalScore)
	assert.Len(t, broadcasted, 3)

	// Running it again replaces rather than appends
	if err := service.RecomputeNow(); err != nil {
		t.Fatalf("Second RecomputeNow failed: %v", err)
	}
	entries, err = service.CurrentLeaderboard()
	if err != nil {
		t.Fatalf("CurrentLeaderboard failed: %v", err)
	}
	assert.Len(t, entries, 3)
}

func TestSnapshotDay(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	service := NewLeaderboardService(db, scoring.DefaultRules())

	has, err := service.HasSnapshotFor(daysAgo(0))
	if err != nil {
		t.Fatalf("HasSnapshotFor failed: %v", err)
	}
	assert.False(t, has)

	if err := service.SnapshotDay(daysAgo(0)); err != nil {
		t.Fatalf("SnapshotDay failed: %v", err)
	}
	// Idempotent: the same day replaces its own rows
	if err := service.SnapshotDay(daysAgo(0)); err != nil {
		t.Fatalf("Second SnapshotDay failed: %v", err)
	}

	var count int64
	db.Model(&models.LeaderboardSnapshot{}).
		Where("snapshot_timestamp = ?", scoring.EndOfDay(daysAgo(0))).
		Count(&count)
	assert.Equal(t, int64(3), count)

	has, err = service.HasSnapshotFor(daysAgo(0))
	if err != nil {
		t.Fatalf("HasSnapshotFor failed: %v", err)
	}
	assert.True(t, has)

	latest, err := service.LatestSnapshotTime()
	if err != nil {
		t.Fatalf("LatestSnapshotTime failed: %v", err)
	}
	if assert.NotNil(t, latest) {
		assert.True(t, latest.Equal(scoring.EndOfDay(daysAgo(0))))
	}
}

func TestSnapshotDayCoversOnlyThatDay(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	service := NewLeaderboardService(db, scoring.DefaultRules())

	// Snapshotting yesterday must not pick up today's retweet.
	if err := service.SnapshotDay(daysAgo(1)); err != nil {
		t.Fatalf("SnapshotDay failed: %v", err)
	}

	var stored []models.LeaderboardSnapshot
	db.Where("snapshot_timestamp = ?", scoring.EndOfDay(daysAgo(1))).
		Order("rank ASC, telegram_name ASC").
		Find(&stored)
	if len(stored) != 3 {
		t.Fatalf("Expected 3 snapshot rows, got %d", len(stored))
	}

	alice := stored[0]
	assert.Equal(t, int64(1), alice.UserID)
	assert.Equal(t, 0.0, alice.TotalScoreFromEngagements)
	assert.Equal(t, 39.0, alice.GrandTotalScore) // 42 only once today counts

	rows, err := service.RecomputeAsOf(scoring.EndOfDay(daysAgo(1)))
	if err != nil {
		t.Fatalf("RecomputeAsOf failed: %v", err)
	}
	for i, row := range rows {
		assert.Equal(t, row.ScoreBreakdown, stored[i].ScoreBreakdown)
	}
}

func TestRebuildHistory(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	service := NewLeaderboardService(db, scoring.DefaultRules())

	if err := service.RebuildHistory(); err != nil {
		t.Fatalf("RebuildHistory failed: %v", err)
	}

	// First activity was two days ago, so the history covers three days,
	// each with a row for every roster ambassador.
	var count int64
	db.Model(&models.LeaderboardSnapshot{}).Count(&count)
	assert.Equal(t, int64(9), count)

	t.Run("every stored day matches a direct recompute", func(t *testing.T) {
		for offset := 2; offset >= 0; offset-- {
			cutoff := scoring.EndOfDay(daysAgo(offset))

			rows, err := service.RecomputeAsOf(cutoff)
			if err != nil {
				t.Fatalf("RecomputeAsOf failed for day -%d: %v", offset, err)
			}

			var stored []models.LeaderboardSnapshot
			db.Where("snapshot_timestamp = ?", cutoff).
				Order("rank ASC, telegram_name ASC").
				Find(&stored)
			if len(stored) != len(rows) {
				t.Fatalf("Expected %d rows for day -%d, got %d", len(rows), offset, len(stored))
			}
			for i, row := range rows {
				assert.Equal(t, row.UserID, stored[i].UserID, "day -%d", offset)
				assert.Equal(t, row.Rank, stored[i].Rank, "day -%d", offset)
				assert.Equal(t, row.ScoreBreakdown, stored[i].ScoreBreakdown, "day -%d", offset)
			}
		}
	})

	t.Run("cumulative totals never decrease day over day", func(t *testing.T) {
		var history []models.LeaderboardSnapshot
		db.Order("snapshot_timestamp ASC").Find(&history)

		previous := map[int64]float64{}
		for _, snap := range history {
			assert.GreaterOrEqual(t, snap.GrandTotalScore, previous[snap.UserID])
			previous[snap.UserID] = snap.GrandTotalScore
		}
	})

	t.Run("live table refreshed from the final day", func(t *testing.T) {
		entries, err := service.CurrentLeaderboard()
		if err != nil {
			t.Fatalf("CurrentLeaderboard failed: %v", err)
		}
		assert.Len(t, entries, 3)
		assert.Equal(t, 42.0, entries[0].GrandTotalScore)
	})

	t.Run("ambassador history is chronological", func(t *testing.T) {
		history, err := service.AmbassadorHistory(1)
		if err != nil {
			t.Fatalf("AmbassadorHistory failed: %v", err)
		}
		assert.Len(t, history, 3)
		assert.Equal(t, 29.0, history[0].GrandTotalScore)
		assert.Equal(t, 42.0, history[2].GrandTotalScore)
	})
}

func TestRebuildHistoryEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)

	service := NewLeaderboardService(db, scoring.DefaultRules())
	if err := service.RebuildHistory(); err != nil {
		t.Fatalf("RebuildHistory failed: %v", err)
	}

	var count int64
	db.Model(&models.LeaderboardSnapshot{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAmbassadorReplay(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)

	service := NewLeaderboardService(db, scoring.DefaultRules())

	// Bob's last activity was yesterday, so his replay stops there even
	// though others were active today.
	history, err := service.AmbassadorReplay(2)
	if err != nil {
		t.Fatalf("AmbassadorReplay failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 replay days, got %d", len(history))
	}

	for _, day := range history {
		if assert.Len(t, day.Rows, 1) {
			assert.Equal(t, int64(2), day.Rows[0].UserID)
		}
	}

	assert.Equal(t, 0.0, history[0].Rows[0].GrandTotalScore)
	assert.Equal(t, 32.0, history[1].Rows[0].GrandTotalScore)
	// Ranked against the full roster: Alice is ahead on both days
	assert.Equal(t, 2, history[1].Rows[0].Rank)
}
