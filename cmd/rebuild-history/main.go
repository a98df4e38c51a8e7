package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	"ambassador-board/internal/database"
	"ambassador-board/internal/scoring"
	"ambassador-board/internal/services"

	"github.com/joho/godotenv"
)

// Destructive: wipes leaderboard_history and regenerates it day by day from
// the raw activity tables under the current scoring rules. Run after data
// corrections so every affected day picks up the change.
func main() {
	var yes = flag.Bool("yes", false, "Skip the confirmation prompt")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if !*yes && !confirm() {
		log.Println("Operation cancelled")
		return
	}

	// Load database configuration and connect
	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	leaderboardService := services.NewLeaderboardService(database.DB, scoring.DefaultRules())

	log.Println("🔄 Rebuilding full leaderboard history...")
	if err := leaderboardService.RebuildHistory(); err != nil {
		log.Fatalf("❌ Failed to rebuild history: %v", err)
	}
	log.Println("✅ Leaderboard history rebuild completed successfully!")
}

func confirm() bool {
	log.Println("⚠️  This will DELETE the entire leaderboard_history table and regenerate it.")
	log.Print("Are you sure you want to continue? (y/n): ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(strings.ToLower(answer)) == "y"
}
