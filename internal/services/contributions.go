package services

import (
	"fmt"
	"time"

	"ambassador-board/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContributionService records admin-entered manual contributions. Rows are
// immutable after insert; corrections go through dedicated scripts, not this
// service.
type ContributionService struct {
	db *gorm.DB
}

// NewContributionService creates a new contribution service
func NewContributionService(db *gorm.DB) *ContributionService {
	return &ContributionService{db: db}
}

// Record credits an ambassador with points for an out-of-band contribution.
// The ambassador must exist; the contribution type is free-form (unknown
// types still score, they just aren't broken out on the leaderboard).
func (s *ContributionService) Record(userID int64, contributionType string, points float64, description, recordedBy string) (*models.ManualContribution, error) {
	var amb models.Ambassador
	if err := s.db.First(&amb, "telegram_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("ambassador %d is not on the roster", userID)
		}
		return nil, err
	}

	contribution := models.ManualContribution{
		ID:               uuid.New(),
		UserID:           userID,
		ContributionType: contributionType,
		PointsAwarded:    points,
		Description:      description,
		RecordedBy:       recordedBy,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.db.Create(&contribution).Error; err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}
	return &contribution, nil
}

// ForAmbassador lists an ambassador's contributions, newest first.
func (s *ContributionService) ForAmbassador(userID int64) ([]models.ManualContribution, error) {
	var contributions []models.ManualContribution
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&contributions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load contributions for %d: %w", userID, err)
	}
	return contributions, nil
}
