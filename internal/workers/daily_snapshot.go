package workers

import (
	"log"
	"time"

	"ambassador-board/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// DailySnapshotWorker writes one leaderboard history snapshot per completed
// calendar day. It checks whether the day's snapshot already exists before
// generating, so restarts and overlapping deploys never produce duplicate
// days.
type DailySnapshotWorker struct {
	leaderboard *services.LeaderboardService
	scheduler   gocron.Scheduler
}

// NewDailySnapshotWorker creates a new daily snapshot worker
func NewDailySnapshotWorker(leaderboard *services.LeaderboardService) *DailySnapshotWorker {
	return &DailySnapshotWorker{leaderboard: leaderboard}
}

// Start schedules the daily job and runs an immediate catch-up check, in
// case the process was down when the last snapshot window passed.
func (w *DailySnapshotWorker) Start() error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}
	w.scheduler = scheduler

	// Shortly after midnight UTC, once the previous day has fully elapsed.
	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(w.runOnce),
	)
	if err != nil {
		return err
	}

	scheduler.Start()
	log.Println("🔄 Daily snapshot worker started (runs 00:05 UTC)")

	go w.runOnce()
	return nil
}

// Stop shuts the scheduler down.
func (w *DailySnapshotWorker) Stop() {
	if w.scheduler != nil {
		if err := w.scheduler.Shutdown(); err != nil {
			log.Printf("❌ Error stopping daily snapshot worker: %v", err)
		}
	}
}

// runOnce generates the snapshot for the last completed day unless it
// already exists.
func (w *DailySnapshotWorker) runOnce() {
	day := snapshotTarget(time.Now())

	exists, err := w.leaderboard.HasSnapshotFor(day)
	if err != nil {
		log.Printf("❌ Failed to check for existing snapshot: %v", err)
		return
	}
	if exists {
		log.Printf("⏭️  Snapshot for %s already exists, skipping", day.Format("2006-01-02"))
		return
	}

	if err := w.leaderboard.SnapshotDay(day); err != nil {
		log.Printf("❌ Failed to generate daily snapshot: %v", err)
	}
}

// snapshotTarget returns the day runOnce snapshots: the last fully elapsed
// UTC day. Snapshotting the day that just began would freeze a minutes-old
// row that the existence check then never corrects.
func snapshotTarget(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -1)
}
