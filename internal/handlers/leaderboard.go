package handlers

import (
	"net/http"
	"strconv"
	"time"

	"ambassador-board/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LeaderboardHandler serves the read-only leaderboard API consumed by the
// display bot and the dashboard.
type LeaderboardHandler struct {
	db          *gorm.DB
	leaderboard *services.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(db *gorm.DB, leaderboard *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{db: db, leaderboard: leaderboard}
}

// HealthCheck reports service liveness and the age of the newest snapshot.
func (h *LeaderboardHandler) HealthCheck(c *gin.Context) {
	latest, err := h.leaderboard.LatestSnapshotTime()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "degraded", "error": err.Error()})
		return
	}

	resp := gin.H{"status": "ok"}
	if latest != nil {
		resp["latest_snapshot"] = latest.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// GetLeaderboard returns the live leaderboard ordered by rank.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.leaderboard.CurrentLeaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"leaderboard": entries,
		"total":       len(entries),
	})
}

// parseUserParam reads the :user path parameter as a telegram id.
func parseUserParam(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("user"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return userID, true
}

// GetAmbassador returns one ambassador's live row with the full breakdown.
func (h *LeaderboardHandler) GetAmbassador(c *gin.Context) {
	userID, ok := parseUserParam(c)
	if !ok {
		return
	}

	entry, err := h.leaderboard.AmbassadorEntry(userID)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ambassador not on the leaderboard"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ambassador"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetAmbassadorHistory returns one ambassador's stored history rows for
// trend charts.
func (h *LeaderboardHandler) GetAmbassadorHistory(c *gin.Context) {
	userID, ok := parseUserParam(c)
	if !ok {
		return
	}

	history, err := h.leaderboard.AmbassadorHistory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"history": history,
		"days":    len(history),
	})
}

// GetAsOf computes the leaderboard as of an arbitrary cutoff without
// persisting anything. The cutoff comes from the `t` query parameter in
// RFC3339 form and defaults to now.
func (h *LeaderboardHandler) GetAsOf(c *gin.Context) {
	cutoff := time.Now().UTC()
	if t := c.Query("t"); t != "" {
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cutoff; expected RFC3339 timestamp"})
			return
		}
		cutoff = parsed.UTC()
	}

	rows, err := h.leaderboard.RecomputeAsOf(cutoff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cutoff":      cutoff.Format(time.RFC3339),
		"leaderboard": rows,
	})
}
