package worker

import (
	"context"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"ambassador-board/internal/database"
	"ambassador-board/internal/scoring"
	"ambassador-board/internal/services"
	"ambassador-board/internal/workers"
)

// WorkerService manages background workers for the application
type WorkerService struct {
	leaderboardService *services.LeaderboardService
	snapshotWorker     *workers.DailySnapshotWorker
	refreshInterval    time.Duration
	ctx                context.Context
	cancel             context.CancelFunc
	wg                 sync.WaitGroup
	running            bool
	mu                 sync.RWMutex
}

// NewWorkerService creates a new worker service
func NewWorkerService() *WorkerService {
	ctx, cancel := context.WithCancel(context.Background())

	leaderboardService := services.NewLeaderboardService(database.DB, scoring.DefaultRules())
	snapshotWorker := workers.NewDailySnapshotWorker(leaderboardService)

	return &WorkerService{
		leaderboardService: leaderboardService,
		snapshotWorker:     snapshotWorker,
		refreshInterval:    refreshIntervalFromEnv(),
		ctx:                ctx,
		cancel:             cancel,
	}
}

// GetLeaderboardService exposes the shared leaderboard service to handlers
func (ws *WorkerService) GetLeaderboardService() *services.LeaderboardService {
	return ws.leaderboardService
}

// Start starts all background workers
func (ws *WorkerService) Start() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.running {
		return nil // Already running
	}

	log.Println("Starting background workers...")

	// Daily history snapshot (gocron, manages its own goroutine)
	if err := ws.snapshotWorker.Start(); err != nil {
		return err
	}

	// Periodic live leaderboard refresh
	ws.wg.Add(1)
	go func() {
		defer ws.wg.Done()
		ws.runLiveRefresh()
	}()

	ws.running = true
	log.Println("Background workers started successfully")

	return nil
}

// Stop stops all background workers
func (ws *WorkerService) Stop() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if !ws.running {
		return // Not running
	}

	log.Println("Stopping background workers...")

	ws.cancel()
	ws.snapshotWorker.Stop()
	ws.wg.Wait()

	ws.running = false
	log.Println("Background workers stopped")
}

// IsRunning returns whether the worker service is currently running
func (ws *WorkerService) IsRunning() bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.running
}

// runLiveRefresh periodically rewrites the live leaderboard so the display
// layer stays fresh between daily snapshots.
func (ws *WorkerService) runLiveRefresh() {
	log.Printf("Starting live refresh worker (every %v)...", ws.refreshInterval)

	// Refresh once at startup so a fresh deploy serves current data.
	if err := ws.leaderboardService.RecomputeNow(); err != nil {
		log.Printf("❌ Initial leaderboard recompute failed: %v", err)
	}

	ticker := time.NewTicker(ws.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ws.ctx.Done():
			log.Println("Live refresh worker stopped")
			return
		case <-ticker.C:
			if err := ws.leaderboardService.RecomputeNow(); err != nil {
				log.Printf("❌ Periodic leaderboard recompute failed: %v", err)
			}
		}
	}
}

// refreshIntervalFromEnv reads LEADERBOARD_REFRESH_MINUTES, default 60.
func refreshIntervalFromEnv() time.Duration {
	if v := os.Getenv("LEADERBOARD_REFRESH_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return time.Hour
}
