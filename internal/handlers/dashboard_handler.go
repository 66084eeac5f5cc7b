package handlers

import (
	"log"
	"math"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/models"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// GetStats returns the numbers behind the dashboard widgets.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	countByStatus := func(status models.ProposalStatus) int64 {
		var n int64
		if err := h.DB.Model(&models.Proposal{}).
			Where("user_id = ? AND status = ?", userID, status).
			Count(&n).Error; err != nil {
			log.Printf("[Dashboard] count %s failed for user %s: %v", status, userID, err)
		}
		return n
	}

	drafts := countByStatus(models.ProposalStatusDraft)
	sent := countByStatus(models.ProposalStatusSent)
	won := countByStatus(models.ProposalStatusWon)
	total := drafts + sent + won

	// win rate dihitung dari proposal yang sudah keluar (SENT + WON)
	winRate := 0.0
	if sent+won > 0 {
		winRate = math.Round(float64(won)/float64(sent+won)*1000) / 10
	}

	var profileCount int64
	h.DB.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&profileCount)

	var recent []models.Proposal
	h.DB.Select("id", "title", "status", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent)

	return c.JSON(fiber.Map{
		"total_proposals":  total,
		"draft_proposals":  drafts,
		"sent_proposals":   sent,
		"won_proposals":    won,
		"win_rate":         winRate,
		"profile_count":    profileCount,
		"recent_proposals": recent,
	})
}
