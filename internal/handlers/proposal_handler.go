package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/models"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/pipeline"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/services/openai"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/utils"
)

type proposalWriter interface {
	GenerateProposal(ctx context.Context, jobDescription string, prof openai.ProfileContext) (string, error)
	RefineProposal(ctx context.Context, originalProposal, jobDescription string) (string, error)
}

type ProposalHandler struct {
	DB              *gorm.DB
	AI              proposalWriter
	Runner          *pipeline.Runner
	ShareKey        string
	FrontendBaseURL string
}

const minJobDescriptionLen = 10

type generateReq struct {
	Title          string `json:"title"`
	JobDescription string `json:"jobDescription"`
}

func profileContext(p *models.Profile) openai.ProfileContext {
	var skills []string
	if len(p.Skills) > 0 {
		_ = json.Unmarshal(p.Skills, &skills)
	}

	ctx := openai.ProfileContext{
		JobTitle: p.JobTitle,
		Bio:      p.Bio,
		Skills:   skills,
	}
	for _, pr := range p.Projects {
		ctx.Projects = append(ctx.Projects, openai.ProjectContext{
			Title:       pr.Title,
			Description: pr.Description,
			LiveLink:    pr.LiveLink,
			GithubLink:  pr.GithubLink,
		})
	}
	return ctx
}

// Generate writes a new proposal from the job description and the user's
// default profile, and persists it as a DRAFT.
func (h *ProposalHandler) Generate(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req generateReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}

	jobDescription := strings.TrimSpace(req.JobDescription)
	if len(jobDescription) < minJobDescriptionLen {
		return errJSON(c, fiber.StatusBadRequest, "job description must be at least 10 characters")
	}

	var prof models.Profile
	err := h.DB.Preload("Projects").
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&prof).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errJSON(c, fiber.StatusBadRequest, "create a profile first before generating proposals")
		}
		return errJSON(c, fiber.StatusInternalServerError, "internal server error")
	}

	text, err := h.AI.GenerateProposal(c.Context(), jobDescription, profileContext(&prof))
	if err != nil {
		log.Printf("[Proposal] generation failed for user %s: %v", userID, err)
		return errJSON(c, fiber.StatusInternalServerError, "failed to generate proposal")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled proposal"
	}

	p := models.Proposal{
		UserID:         userID,
		Title:          title,
		JobDescription: jobDescription,
		Proposal:       text,
		Status:         models.ProposalStatusDraft,
	}
	if err := h.DB.Create(&p).Error; err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to store proposal")
	}

	// job yang sudah dianalisa dianggap tuntas begitu proposalnya dibuat
	var det models.JobDetails
	if err := h.DB.Select("id").Where("user_id = ?", userID).First(&det).Error; err == nil {
		h.Runner.MarkReady(c.Context(), userID, det.ID)
	}

	return c.JSON(fiber.Map{
		"proposal":   text,
		"proposalId": p.ID,
	})
}

type refineReq struct {
	OriginalProposal string `json:"originalProposal"`
	JobDescription   string `json:"jobDescription"`
}

func (h *ProposalHandler) Refine(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req refineReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}

	original := strings.TrimSpace(req.OriginalProposal)
	jobDescription := strings.TrimSpace(req.JobDescription)
	if original == "" {
		return errJSON(c, fiber.StatusBadRequest, "original proposal is required")
	}
	if len(jobDescription) < minJobDescriptionLen {
		return errJSON(c, fiber.StatusBadRequest, "job description must be at least 10 characters")
	}

	refined, err := h.AI.RefineProposal(c.Context(), original, jobDescription)
	if err != nil {
		log.Printf("[Proposal] refinement failed for user %s: %v", userID, err)
		return errJSON(c, fiber.StatusInternalServerError, "failed to refine proposal")
	}

	return c.JSON(fiber.Map{"refinedProposal": refined})
}

func (h *ProposalHandler) List(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var proposals []models.Proposal
	q := h.DB.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Find(&proposals).Error; err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.JSON(fiber.Map{"proposals": proposals})
}

func (h *ProposalHandler) loadOwned(c *fiber.Ctx) (*models.Proposal, error) {
	userID, ok := getAuth(c)
	if !ok {
		return nil, errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, errJSON(c, fiber.StatusBadRequest, "invalid proposal id")
	}

	var p models.Proposal
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errJSON(c, fiber.StatusNotFound, "proposal not found")
		}
		return nil, errJSON(c, fiber.StatusInternalServerError, "internal server error")
	}
	return &p, nil
}

func (h *ProposalHandler) GetOne(c *fiber.Ctx) error {
	p, err := h.loadOwned(c)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

type updateProposalReq struct {
	Title          *string `json:"title"`
	JobDescription *string `json:"jobDescription"`
	Proposal       *string `json:"proposal"`
}

// Update is the manual-edit path, status tidak bisa diubah dari sini.
func (h *ProposalHandler) Update(c *fiber.Ctx) error {
	p, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	var req updateProposalReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.JobDescription != nil {
		p.JobDescription = strings.TrimSpace(*req.JobDescription)
	}
	if req.Proposal != nil {
		p.Proposal = *req.Proposal
	}
	if p.Proposal == "" || p.JobDescription == "" {
		return errJSON(c, fiber.StatusBadRequest, "proposal and job description cannot be empty")
	}

	if err := h.DB.Save(p).Error; err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to update proposal")
	}
	return c.JSON(p)
}

type updateStatusReq struct {
	Status models.ProposalStatus `json:"status"`
}

// UpdateStatus advances DRAFT -> SENT -> WON; mundur atau loncat ke status
// tidak dikenal ditolak, WON terminal.
func (h *ProposalHandler) UpdateStatus(c *fiber.Ctx) error {
	p, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	var req updateStatusReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}

	if !p.Status.CanTransition(req.Status) {
		return errJSON(c, fiber.StatusBadRequest, "invalid status transition")
	}

	p.Status = req.Status
	if err := h.DB.Save(p).Error; err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to update status")
	}
	return c.JSON(p)
}

func (h *ProposalHandler) Delete(c *fiber.Ctx) error {
	p, err := h.loadOwned(c)
	if err != nil {
		return err
	}
	if err := h.DB.Delete(p).Error; err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to delete proposal")
	}
	return c.JSON(fiber.Map{"success": true})
}

// Share mints a read-only link for one proposal.
func (h *ProposalHandler) Share(c *fiber.Ctx) error {
	p, err := h.loadOwned(c)
	if err != nil {
		return err
	}
	if h.ShareKey == "" {
		return errJSON(c, fiber.StatusInternalServerError, "sharing is not configured")
	}

	token, err := utils.EncryptShareToken(p.ID, h.ShareKey)
	if err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to create share link")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"url":   h.FrontendBaseURL + "/p/" + token,
	})
}

// SharedView is public: resolves a share token to the proposal text.
func (h *ProposalHandler) SharedView(c *fiber.Ctx) error {
	if h.ShareKey == "" {
		return errJSON(c, fiber.StatusNotFound, "not found")
	}

	id, err := utils.DecryptShareToken(c.Params("token"), h.ShareKey)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "not found")
	}

	var p models.Proposal
	if err := h.DB.First(&p, "id = ?", id).Error; err != nil {
		return errJSON(c, fiber.StatusNotFound, "not found")
	}

	return c.JSON(fiber.Map{
		"title":    p.Title,
		"proposal": p.Proposal,
	})
}
