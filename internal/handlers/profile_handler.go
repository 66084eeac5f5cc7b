package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/models"
)

type ProfileHandler struct {
	DB *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

type projectReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	LiveLink    string `json:"liveLink"`
	GithubLink  string `json:"githubLink"`
}

type createProfileReq struct {
	JobTitle  string       `json:"jobTitle"`
	Bio       string       `json:"bio"`
	Skills    []string     `json:"skills"`
	IsDefault bool         `json:"isDefault"`
	Projects  []projectReq `json:"projects"`
}

// validateCreateProfile enforces the wizard's hard limits server-side too:
// 1..4 project dan field wajib, supaya request yang skip form tetap ketahan.
func validateCreateProfile(req *createProfileReq) error {
	if strings.TrimSpace(req.JobTitle) == "" {
		return errors.New("job title is required")
	}
	if len(req.Projects) == 0 {
		return errors.New("at least one project is required")
	}
	if len(req.Projects) > models.MaxProjectsPerProfile {
		return fmt.Errorf("a profile can have at most %d projects", models.MaxProjectsPerProfile)
	}
	for i, p := range req.Projects {
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
			return fmt.Errorf("project %d needs a title and a description", i+1)
		}
	}
	return nil
}

func (h *ProfileHandler) List(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var profiles []models.Profile
	if err := h.DB.Preload("Projects").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&profiles).Error; err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.JSON(fiber.Map{"profiles": profiles})
}

// Create makes the profile, all its projects and the user's
// has_created_profile flag in ONE transaction: semua masuk atau semua gagal.
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createProfileReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := validateCreateProfile(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, err.Error())
	}

	var count int64
	if err := h.DB.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "internal server error")
	}
	if count >= models.MaxProfilesPerUser {
		return errJSON(c, fiber.StatusBadRequest,
			fmt.Sprintf("a user can have at most %d profiles", models.MaxProfilesPerUser))
	}

	skillsJSON, err := json.Marshal(req.Skills)
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid skills")
	}

	// profile pertama otomatis jadi default
	makeDefault := req.IsDefault || count == 0

	profile := models.Profile{
		UserID:    userID,
		JobTitle:  strings.TrimSpace(req.JobTitle),
		Bio:       strings.TrimSpace(req.Bio),
		Skills:    datatypes.JSON(skillsJSON),
		IsDefault: makeDefault,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if makeDefault {
			if err := tx.Model(&models.Profile{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		for _, p := range req.Projects {
			project := models.Project{
				ProfileID:   profile.ID,
				Title:       strings.TrimSpace(p.Title),
				Description: strings.TrimSpace(p.Description),
				LiveLink:    strings.TrimSpace(p.LiveLink),
				GithubLink:  strings.TrimSpace(p.GithubLink),
			}
			if err := tx.Create(&project).Error; err != nil {
				return err
			}
			profile.Projects = append(profile.Projects, project)
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("has_created_profile", true).Error
	})
	if err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to create profile")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) SetDefault(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid profile id")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var prof models.Profile
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&prof).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Profile{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&prof).Update("is_default", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errJSON(c, fiber.StatusNotFound, "profile not found")
		}
		return errJSON(c, fiber.StatusInternalServerError, "failed to set default profile")
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid profile id")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var prof models.Profile
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&prof).Error; err != nil {
			return err
		}

		if err := tx.Where("profile_id = ?", prof.ID).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&prof).Error; err != nil {
			return err
		}

		// kalau yang dihapus default, promosikan profile tersisa yang terbaru
		if prof.IsDefault {
			var next models.Profile
			err := tx.Where("user_id = ?", userID).Order("created_at DESC").First(&next).Error
			if err == nil {
				return tx.Model(&next).Update("is_default", true).Error
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errJSON(c, fiber.StatusNotFound, "profile not found")
		}
		return errJSON(c, fiber.StatusInternalServerError, "failed to delete profile")
	}

	return c.JSON(fiber.Map{"success": true})
}
