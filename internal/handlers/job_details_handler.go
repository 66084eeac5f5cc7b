package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/models"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/pipeline"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/upwork"
)

type JobDetailsHandler struct {
	DB     *gorm.DB
	Runner *pipeline.Runner
	Status pipeline.PhaseStore
}

func NewJobDetailsHandler(db *gorm.DB, runner *pipeline.Runner, status pipeline.PhaseStore) *JobDetailsHandler {
	return &JobDetailsHandler{DB: db, Runner: runner, Status: status}
}

type jobDetailsReq struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

// Create stores the captured job page (one active record per user, upsert on
// user_id supaya tidak ada window delete-then-insert) and kicks off the
// fetch/analyze pipeline.
func (h *JobDetailsHandler) Create(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req jobDetailsReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.HTML) == "" {
		return errJSON(c, fiber.StatusBadRequest, "html is required")
	}

	parsed := upwork.ParseJobURL(req.URL)

	det := models.JobDetails{
		UserID:   userID,
		URL:      req.URL,
		HTML:     req.HTML,
		Platform: parsed.Platform,
		JobID:    parsed.JobID,
		Analyzed: nil,
	}

	if err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "html", "platform", "job_id", "analyzed", "updated_at"}),
	}).Create(&det).Error; err != nil {
		log.Printf("[JobDetails] upsert failed for user %s: %v", userID, err)
		return errJSON(c, fiber.StatusInternalServerError, "failed to store job details")
	}

	// upsert path tidak mengembalikan id record lama, ambil ulang
	var stored models.JobDetails
	if err := h.DB.Select("id").Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to store job details")
	}

	h.Runner.Start(userID, stored.ID)

	return c.JSON(fiber.Map{
		"success":      true,
		"jobDetailsId": stored.ID,
	})
}

// Get returns the stored record plus the current pipeline phase and the
// flattened table data when analysis has finished.
func (h *JobDetailsHandler) Get(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid job details id")
	}

	var det models.JobDetails
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&det).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errJSON(c, fiber.StatusNotFound, "job details not found")
		}
		return errJSON(c, fiber.StatusInternalServerError, "internal server error")
	}

	resp := fiber.Map{"job_details": det}

	if ev, err := h.Status.Get(c.Context(), det.ID); err == nil && ev != nil {
		resp["phase"] = ev.Phase
		if ev.Error != "" {
			resp["phase_error"] = ev.Error
		}
	}

	if len(det.Analyzed) > 0 {
		var data upwork.AnalizedUpworkJobData
		if err := json.Unmarshal(det.Analyzed, &data); err == nil {
			resp["items"] = upwork.FlattenJobData(data)
		}
	}

	return c.JSON(resp)
}
