package models

import (
	"time"

	"github.com/google/uuid"
)

// Known contribution types. Admins can record other types; those still add
// to the score total but are not broken out into their own count column.
const (
	ContributionPartnerIntroduction   = "partner_introduction"
	ContributionHostingAMA            = "hosting_ama"
	ContributionRecruitmentAmbassador = "recruitment_ambassador"
	ContributionProductFeedback       = "product_feedback"
	ContributionRecruitmentInvestor   = "recruitment_investor"
)

// ManualContribution credits an ambassador with points for an out-of-band
// contribution entered by an admin. Rows are immutable after insert.
type ManualContribution struct {
	ID               uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID           int64     `json:"user_id" db:"user_id" gorm:"index;not null"` // ambassador's telegram_id
	ContributionType string    `json:"contribution_type" db:"contribution_type" gorm:"not null"`
	PointsAwarded    float64   `json:"points_awarded" db:"points_awarded" gorm:"default:0"`
	Description      string    `json:"description" db:"description" gorm:"type:text"`
	RecordedBy       string    `json:"recorded_by" db:"recorded_by"`
	CreatedAt        time.Time `json:"created_at" db:"created_at" gorm:"index"`
}

// TableName sets the table name for the ManualContribution model
func (ManualContribution) TableName() string {
	return "manual_contributions"
}
