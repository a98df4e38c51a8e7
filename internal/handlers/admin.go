package handlers

import (
	"net/http"
	"time"

	"ambassador-board/internal/auth"
	"ambassador-board/internal/models"
	"ambassador-board/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler exposes the mutating operations: recompute, snapshot, the
// destructive history rebuild, and manual contribution entry.
type AdminHandler struct {
	db            *gorm.DB
	leaderboard   *services.LeaderboardService
	contributions *services.ContributionService
	verifier      *auth.AdminVerifier
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, leaderboard *services.LeaderboardService, contributions *services.ContributionService, verifier *auth.AdminVerifier) *AdminHandler {
	return &AdminHandler{
		db:            db,
		leaderboard:   leaderboard,
		contributions: contributions,
		verifier:      verifier,
	}
}

// AdminAuth is the bearer-token middleware for the admin group. The token
// subject is stored in the context for audit fields.
func (h *AdminHandler) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := h.verifier.ValidateToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing admin token"})
			return
		}
		c.Set("admin_subject", subject)
		c.Next()
	}
}

// Dashboard returns roster and activity counts plus the newest snapshot time.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	var ambassadors, tweets, engagements, contributions int64
	h.db.Model(&models.Ambassador{}).Count(&ambassadors)
	h.db.Model(&models.Tweet{}).Count(&tweets)
	h.db.Model(&models.Engagement{}).Count(&engagements)
	h.db.Model(&models.ManualContribution{}).Count(&contributions)

	latest, err := h.leaderboard.LatestSnapshotTime()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load snapshot state"})
		return
	}

	resp := gin.H{
		"ambassadors":   ambassadors,
		"tweets":        tweets,
		"engagements":   engagements,
		"contributions": contributions,
	}
	if latest != nil {
		resp["latest_snapshot"] = latest.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// Recompute rewrites the live leaderboard with cutoff = now.
func (h *AdminHandler) Recompute(c *gin.Context) {
	if err := h.leaderboard.RecomputeNow(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recomputed"})
}

// Snapshot writes today's history snapshot (or a specific day via the
// `day` query parameter, YYYY-MM-DD) and refreshes the live table.
func (h *AdminHandler) Snapshot(c *gin.Context) {
	day := time.Now().UTC()
	if d := c.Query("day"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day; expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	if err := h.leaderboard.SnapshotDay(day); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "snapshot saved", "day": day.Format("2006-01-02")})
}

// RebuildHistory discards and regenerates the entire history table. The
// request must carry `confirm=true`; this is not an operation to trip over.
func (h *AdminHandler) RebuildHistory(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "History rebuild is destructive; pass confirm=true"})
		return
	}

	if err := h.leaderboard.RebuildHistory(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "history rebuilt"})
}

type contributionRequest struct {
	UserID           int64   `json:"user_id" binding:"required"`
	ContributionType string  `json:"contribution_type" binding:"required"`
	Points           float64 `json:"points" binding:"required"`
	Description      string  `json:"description"`
}

// RecordContribution credits an ambassador with manual contribution points.
// The recorder identity comes from the admin token, not the request body.
func (h *AdminHandler) RecordContribution(c *gin.Context) {
	var req contributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordedBy := c.GetString("admin_subject")
	contribution, err := h.contributions.Record(req.UserID, req.ContributionType, req.Points, req.Description, recordedBy)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, contribution)
}

// AmbassadorReplay runs the single-ambassador diagnostic replay and returns
// the day-by-day cumulative rows, for verifying stored history.
func (h *AdminHandler) AmbassadorReplay(c *gin.Context) {
	userID, ok := parseUserParam(c)
	if !ok {
		return
	}

	history, err := h.leaderboard.AmbassadorReplay(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "replay": history})
}
