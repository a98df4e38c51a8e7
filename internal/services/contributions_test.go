package services

import (
	"testing"
	"time"

	"ambassador-board/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRecordContribution(t *testing.T) {
	db := setupTestDB(t)

	amb := models.Ambassador{TelegramID: 10, TelegramName: "Dana", TwitterID: "tw-dana"}
	if err := db.Create(&amb).Error; err != nil {
		t.Fatalf("Failed to seed ambassador: %v", err)
	}

	service := NewContributionService(db)

	t.Run("records for a roster ambassador", func(t *testing.T) {
		contribution, err := service.Record(10, models.ContributionPartnerIntroduction, 25, "Introduced acme corp", "admin-1")
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", contribution.ID.String())
		assert.Equal(t, int64(10), contribution.UserID)
		assert.Equal(t, 25.0, contribution.PointsAwarded)
		assert.Equal(t, "admin-1", contribution.RecordedBy)
	})

	t.Run("rejects unknown ambassadors", func(t *testing.T) {
		_, err := service.Record(999, models.ContributionHostingAMA, 20, "", "admin-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not on the roster")
	})

	t.Run("accepts contribution types outside the known set", func(t *testing.T) {
		_, err := service.Record(10, "conference_talk", 40, "Spoke at devcon", "admin-2")
		assert.NoError(t, err)
	})
}

func TestContributionsForAmbassador(t *testing.T) {
	db := setupTestDB(t)

	amb := models.Ambassador{TelegramID: 11, TelegramName: "Erik", TwitterID: "tw-erik"}
	if err := db.Create(&amb).Error; err != nil {
		t.Fatalf("Failed to seed ambassador: %v", err)
	}

	service := NewContributionService(db)
	first, err := service.Record(11, models.ContributionProductFeedback, 15, "Beta feedback", "admin-1")
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	// Push the first one into the past so ordering is deterministic
	if err := db.Model(&models.ManualContribution{}).
		Where("id = ?", first.ID).
		Update("created_at", time.Now().UTC().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("Failed to backdate contribution: %v", err)
	}
	if _, err := service.Record(11, models.ContributionRecruitmentInvestor, 50, "Brought in an investor", "admin-1"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	contributions, err := service.ForAmbassador(11)
	if err != nil {
		t.Fatalf("ForAmbassador failed: %v", err)
	}
	if len(contributions) != 2 {
		t.Fatalf("Expected 2 contributions, got %d", len(contributions))
	}
	// Newest first
	assert.Equal(t, models.ContributionRecruitmentInvestor, contributions[0].ContributionType)
	assert.Equal(t, models.ContributionProductFeedback, contributions[1].ContributionType)

	empty, err := service.ForAmbassador(12345)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}
