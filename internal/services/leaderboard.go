package services

import (
	"fmt"
	"log"
	"time"

	"ambassador-board/internal/models"
	"ambassador-board/internal/scoring"

	"gorm.io/gorm"
)

// LeaderboardService runs the scoring engine against the database and owns
// the two output tables. Every write path is a single transaction so readers
// never observe a half-updated ranking or a partially truncated history.
type LeaderboardService struct {
	db        *gorm.DB
	rules     scoring.Rules
	broadcast func([]models.LeaderboardEntry)
}

// NewLeaderboardService creates a leaderboard service with the given rules.
func NewLeaderboardService(db *gorm.DB, rules scoring.Rules) *LeaderboardService {
	return &LeaderboardService{db: db, rules: rules}
}

// SetBroadcast registers a hook called with the fresh entries after each
// successful live-table rewrite. Used by the websocket feed.
func (s *LeaderboardService) SetBroadcast(fn func([]models.LeaderboardEntry)) {
	s.broadcast = fn
}

// RecomputeNow recomputes every ambassador's score with cutoff = now and
// rewrites the live leaderboard wholesale. It never touches history.
func (s *LeaderboardService) RecomputeNow() error {
	now := time.Now().UTC()
	var entries []models.LeaderboardEntry

	err := s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := scoring.NewAggregator(tx, s.rules).ScoresAt(now)
		if err != nil {
			return err
		}
		scoring.AssignRanks(rows)

		entries = make([]models.LeaderboardEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, entryFromRow(row, now))
		}
		return s.rewriteLive(tx, entries)
	})
	if err != nil {
		return fmt.Errorf("failed to recompute leaderboard: %w", err)
	}

	log.Printf("✅ Live leaderboard rewritten with %d entries", len(entries))
	if s.broadcast != nil {
		s.broadcast(entries)
	}
	return nil
}

// RecomputeAsOf computes the ranked leaderboard as of an arbitrary cutoff
// without writing anything. Used for point-in-time diagnostics.
func (s *LeaderboardService) RecomputeAsOf(cutoff time.Time) ([]scoring.Row, error) {
	var rows []scoring.Row
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = scoring.NewAggregator(tx, s.rules).ScoresAt(cutoff)
		if err != nil {
			return err
		}
		scoring.AssignRanks(rows)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute leaderboard as of %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return rows, nil
}

// SnapshotDay computes the leaderboard with cutoff = end of the given day,
// replaces that day's history rows, and refreshes the live table to match.
// Re-running for the same day is idempotent.
func (s *LeaderboardService) SnapshotDay(day time.Time) error {
	cutoff := scoring.EndOfDay(day)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := scoring.NewAggregator(tx, s.rules).ScoresAt(cutoff)
		if err != nil {
			return err
		}
		scoring.AssignRanks(rows)

		// Targeted replace: only this day's rows are discarded.
		if err := tx.Where("snapshot_timestamp = ?", cutoff).
			Delete(&models.LeaderboardSnapshot{}).Error; err != nil {
			return err
		}

		snapshots := make([]models.LeaderboardSnapshot, 0, len(rows))
		entries := make([]models.LeaderboardEntry, 0, len(rows))
		for _, row := range rows {
			snapshots = append(snapshots, snapshotFromRow(row, cutoff))
			entries = append(entries, entryFromRow(row, cutoff))
		}
		if len(snapshots) > 0 {
			if err := tx.CreateInBatches(snapshots, 500).Error; err != nil {
				return err
			}
		}
		return s.rewriteLive(tx, entries)
	})
	if err != nil {
		return fmt.Errorf("failed to snapshot leaderboard for %s: %w", day.Format("2006-01-02"), err)
	}

	log.Printf("✅ Leaderboard snapshot saved for %s", day.UTC().Format("2006-01-02"))
	return nil
}

// HasSnapshotFor reports whether any history rows exist for the given day.
// The daily worker uses it to avoid generating twice.
func (s *LeaderboardService) HasSnapshotFor(day time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.LeaderboardSnapshot{}).
		Where("snapshot_timestamp = ?", scoring.EndOfDay(day)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RebuildHistory discards the entire history table and regenerates it from
// the first observed activity day through today, then refreshes the live
// table from the final day. Destructive; only invoked explicitly.
func (s *LeaderboardService) RebuildHistory() error {
	var days int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		history, err := scoring.NewReplayer(tx, s.rules).BuildHistory()
		if err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM leaderboard_history").Error; err != nil {
			return err
		}
		if len(history) == 0 {
			log.Println("⚠️  No activity found in any source table; history left empty")
			return nil
		}

		var snapshots []models.LeaderboardSnapshot
		for _, day := range history {
			ts := scoring.EndOfDay(day.Date)
			for _, row := range day.Rows {
				snapshots = append(snapshots, snapshotFromRow(row, ts))
			}
		}
		if err := tx.CreateInBatches(snapshots, 500).Error; err != nil {
			return err
		}

		last := history[len(history)-1]
		lastTS := scoring.EndOfDay(last.Date)
		entries := make([]models.LeaderboardEntry, 0, len(last.Rows))
		for _, row := range last.Rows {
			entries = append(entries, entryFromRow(row, lastTS))
		}
		if err := s.rewriteLive(tx, entries); err != nil {
			return err
		}

		days = len(history)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to rebuild leaderboard history: %w", err)
	}

	log.Printf("✅ Leaderboard history rebuilt: %d days replayed", days)
	return nil
}

// AmbassadorReplay runs the single-ambassador diagnostic replay. It reads
// the source tables, not the history table, so it can be used to verify the
// stored history after corrections.
func (s *LeaderboardService) AmbassadorReplay(userID int64) ([]scoring.DaySnapshot, error) {
	var history []scoring.DaySnapshot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		history, err = scoring.NewReplayer(tx, s.rules).BuildAmbassadorHistory(userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replay history for ambassador %d: %w", userID, err)
	}
	return history, nil
}

// CurrentLeaderboard returns the live table ordered by rank.
func (s *LeaderboardService) CurrentLeaderboard() ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.db.Order("rank ASC, telegram_name ASC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return entries, nil
}

// AmbassadorEntry returns one ambassador's live row.
func (s *LeaderboardService) AmbassadorEntry(userID int64) (*models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry
	if err := s.db.First(&entry, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// AmbassadorHistory returns one ambassador's stored history rows in
// chronological order, for trend display.
func (s *LeaderboardService) AmbassadorHistory(userID int64) ([]models.LeaderboardSnapshot, error) {
	var snapshots []models.LeaderboardSnapshot
	err := s.db.Where("user_id = ?", userID).
		Order("snapshot_timestamp ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history for ambassador %d: %w", userID, err)
	}
	return snapshots, nil
}

// LatestSnapshotTime returns the newest history timestamp, or nil when the
// history table is empty.
func (s *LeaderboardService) LatestSnapshotTime() (*time.Time, error) {
	var snapshot models.LeaderboardSnapshot
	err := s.db.Order("snapshot_timestamp DESC").First(&snapshot).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot.SnapshotTimestamp, nil
}

// rewriteLive replaces the live leaderboard inside the caller's transaction.
func (s *LeaderboardService) rewriteLive(tx *gorm.DB, entries []models.LeaderboardEntry) error {
	if err := tx.Exec("DELETE FROM leaderboard").Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return tx.CreateInBatches(entries, 500).Error
}

func entryFromRow(row scoring.Row, updated time.Time) models.LeaderboardEntry {
	return models.LeaderboardEntry{
		UserID:          row.UserID,
		Rank:            row.Rank,
		TelegramName:    row.TelegramName,
		TwitterUsername: row.TwitterUsername,
		ScoreBreakdown:  row.ScoreBreakdown,
		LastUpdated:     updated,
	}
}

func snapshotFromRow(row scoring.Row, ts time.Time) models.LeaderboardSnapshot {
	return models.LeaderboardSnapshot{
		SnapshotTimestamp: ts,
		UserID:            row.UserID,
		Rank:              row.Rank,
		TelegramName:      row.TelegramName,
		TwitterUsername:   row.TwitterUsername,
		ScoreBreakdown:    row.ScoreBreakdown,
	}
}
