package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"ambassador-board/internal/database"
	"ambassador-board/internal/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// This is a simple utility script to seed the database with sample data for
// local development. In production the roster and activity tables are filled
// by the registration bot and the collectors.

func main() {
	var days = flag.Int("days", 14, "Number of days of activity to generate")
	flag.Parse()

	log.Printf("🌱 Ambassador Board Database Seeder")
	log.Printf("===================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	seedAmbassadors()
	seedActivity(*days)

	log.Println("✅ Database seeding completed")
	log.Println("")
	log.Println("Next steps:")
	log.Println("  go run ./cmd/recompute            # build the live leaderboard")
	log.Println("  go run ./cmd/rebuild-history -yes # generate the full history")
	log.Println("  go run ./cmd/server               # serve the API")
}

var sampleAmbassadors = []models.Ambassador{
	{TelegramID: 1001, TelegramName: "Alice Almeida", TelegramUsername: "alice_a", TwitterID: "tw-1001", TwitterUsername: "alice_tweets"},
	{TelegramID: 1002, TelegramName: "Bruno Costa", TelegramUsername: "bruno_c", TwitterID: "tw-1002", TwitterUsername: "bruno_posts"},
	{TelegramID: 1003, TelegramName: "Carla Dias", TelegramUsername: "carla_d", TwitterID: "tw-1003", TwitterUsername: "carla_says"},
	{TelegramID: 1004, TelegramName: "Diego Souza", TelegramUsername: "diego_s", TwitterID: "tw-1004", TwitterUsername: "diego_writes"},
	{TelegramID: 1005, TelegramName: "Elena Lima", TelegramUsername: "elena_l", TwitterID: "tw-1005", TwitterUsername: "elena_shares"},
}

func seedAmbassadors() {
	log.Printf("👥 Seeding %d ambassadors...", len(sampleAmbassadors))
	for _, amb := range sampleAmbassadors {
		if err := database.DB.FirstOrCreate(&amb, "telegram_id = ?", amb.TelegramID).Error; err != nil {
			log.Printf("❌ Failed to seed ambassador %s: %v", amb.TelegramName, err)
		}
	}
}

func seedActivity(days int) {
	log.Printf("📅 Seeding %d days of activity...", days)
	start := time.Now().UTC().AddDate(0, 0, -days+1)
	mediaTypes := []string{models.MediaTypeTextOnly, models.MediaTypeImage, models.MediaTypeVideo}

	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)

		for i, amb := range sampleAmbassadors {
			// Not everyone is active every day
			if (d+i)%3 == 0 {
				continue
			}

			tweet := models.Tweet{
				ID:        fmt.Sprintf("seed-%s-%d", day.Format("20060102"), amb.TelegramID),
				AuthorID:  amb.TwitterID,
				Text:      fmt.Sprintf("Sample tweet by %s on %s", amb.TelegramName, day.Format("2006-01-02")),
				Views:     200 * (i + 1) * (d%4 + 1),
				Likes:     5 * (i + 1),
				MediaType: mediaTypes[(d+i)%len(mediaTypes)],
				IsThread:  (d+i)%5 == 0,
				CreatedAt: day.Add(10 * time.Hour),
			}
			if err := database.DB.FirstOrCreate(&tweet, "tweet_id = ?", tweet.ID).Error; err != nil {
				log.Printf("❌ Failed to seed tweet: %v", err)
			}

			entity := models.TweetEntity{
				TweetID:    tweet.ID,
				EntityType: models.EntityTypeHashtag,
				EntityText: "ambassadors",
			}
			err := database.DB.FirstOrCreate(&entity,
				"tweet_id = ? AND entity_type = ? AND entity_text = ?",
				entity.TweetID, entity.EntityType, entity.EntityText).Error
			if err != nil {
				log.Printf("❌ Failed to seed tweet entity: %v", err)
			}

			snapshot := models.MetricSnapshot{
				TweetID:    tweet.ID,
				CapturedAt: day.Add(23 * time.Hour),
				Views:      tweet.Views,
				Likes:      tweet.Likes,
			}
			err = database.DB.FirstOrCreate(&snapshot,
				"tweet_id = ? AND captured_at = ?", snapshot.TweetID, snapshot.CapturedAt).Error
			if err != nil {
				log.Printf("❌ Failed to seed metric snapshot: %v", err)
			}

			activity := models.DailyActivity{
				UserID:        amb.TelegramID,
				ActivityDate:  day,
				TotalDayScore: float64(2 + (d+i)%7),
				Details:       `{"sessions": 1}`,
			}
			if err := database.DB.FirstOrCreate(&activity, "user_id = ? AND activity_date = ?", amb.TelegramID, day).Error; err != nil {
				log.Printf("❌ Failed to seed daily activity: %v", err)
			}

			// Engage with the previous ambassador's tweet, if they posted today
			j := (i + len(sampleAmbassadors) - 1) % len(sampleAmbassadors)
			if (d+j)%3 == 0 {
				continue
			}
			prev := sampleAmbassadors[j]
			engagement := models.Engagement{
				TweetID:           fmt.Sprintf("seed-%s-%d", day.Format("20060102"), prev.TelegramID),
				TweetAuthorID:     prev.TwitterID,
				InteractingUserID: amb.TwitterID,
				ActionType:        models.ActionTypeReply,
				PointsAwarded:     2,
				CreatedAt:         day.Add(12 * time.Hour),
			}
			err = database.DB.FirstOrCreate(&engagement,
				"tweet_id = ? AND interacting_user_id = ? AND action_type = ?",
				engagement.TweetID, engagement.InteractingUserID, engagement.ActionType).Error
			if err != nil {
				log.Printf("❌ Failed to seed engagement: %v", err)
			}
		}
	}

	// A couple of manual contributions for variety
	contribution := models.ManualContribution{
		ID:               uuid.New(),
		UserID:           sampleAmbassadors[0].TelegramID,
		ContributionType: models.ContributionProductFeedback,
		PointsAwarded:    15,
		Description:      "Detailed feedback on the beta release",
		RecordedBy:       "seeder",
		CreatedAt:        start.Add(36 * time.Hour),
	}
	if err := database.DB.FirstOrCreate(&contribution, "user_id = ? AND contribution_type = ?", contribution.UserID, contribution.ContributionType).Error; err != nil {
		log.Printf("❌ Failed to seed contribution: %v", err)
	}
}
