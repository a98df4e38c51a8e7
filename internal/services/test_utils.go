package services

import (
	"os"
	"testing"

	"ambassador-board/internal/database"
	"ambassador-board/internal/models"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Set test environment variables
	if os.Getenv("DB_NAME") == "" {
		os.Setenv("DB_NAME", "ambassador_board_test")
	}
	os.Setenv("DB_SSLMODE", "disable")

	// Load test database configuration
	config := database.LoadConfig()

	// Connect to test database
	err := database.Connect(config)
	if err != nil {
		t.Skipf("Skipping test - PostgreSQL test database not available: %v", err)
	}

	db := database.DB

	// Run migrations to ensure schema is up to date
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	// Clean up any existing test data, children first
	db.Exec("DELETE FROM leaderboard_history")
	db.Exec("DELETE FROM leaderboard")
	db.Exec("DELETE FROM manual_contributions")
	db.Exec("DELETE FROM ambassador_engagements")
	db.Exec("DELETE FROM telegram_daily_activity")
	db.Exec("DELETE FROM tweet_metrics_history")
	db.Exec("DELETE FROM tweet_entities")
	db.Exec("DELETE FROM tweets")
	db.Exec("DELETE FROM ambassadors")

	return db
}
