package main

import (
	"flag"
	"log"
	"time"

	"ambassador-board/internal/database"
	"ambassador-board/internal/scoring"
	"ambassador-board/internal/services"

	"github.com/joho/godotenv"
)

func main() {
	var asOf = flag.String("as-of", "", "Compute as of this RFC3339 cutoff and print, without writing")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load database configuration and connect
	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	leaderboardService := services.NewLeaderboardService(database.DB, scoring.DefaultRules())

	if *asOf != "" {
		cutoff, err := time.Parse(time.RFC3339, *asOf)
		if err != nil {
			log.Fatalf("❌ Invalid -as-of value %q: %v", *asOf, err)
		}

		rows, err := leaderboardService.RecomputeAsOf(cutoff.UTC())
		if err != nil {
			log.Fatalf("❌ Failed to compute leaderboard: %v", err)
		}

		log.Printf("📊 Leaderboard as of %s (%d ambassadors):", cutoff.Format(time.RFC3339), len(rows))
		for _, row := range rows {
			log.Printf("  #%-3d %-24s @%-16s %8.2f pts (tweets %.2f, engagements %.2f, telegram %.2f, contributions %.2f)",
				row.Rank, row.TelegramName, row.TwitterUsername, row.GrandTotalScore,
				row.TotalScoreFromTweets, row.TotalScoreFromEngagements,
				row.TotalScoreFromTelegram, row.TotalScoreFromContributions)
		}
		return
	}

	log.Println("🔄 Recomputing live leaderboard...")
	if err := leaderboardService.RecomputeNow(); err != nil {
		log.Fatalf("❌ Failed to recompute leaderboard: %v", err)
	}
	log.Println("✅ Leaderboard recompute completed successfully!")
}
