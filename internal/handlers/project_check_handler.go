package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/services/openai"
)

type projectChecker interface {
	CheckProject(ctx context.Context, project openai.ProjectContext) (*openai.ProjectAnalysis, error)
}

type ProjectCheckHandler struct {
	AI projectChecker
}

type projectCheckReq struct {
	Projects []projectReq `json:"projects"`
}

// Check fans one completion request out per project. Hasil dikembalikan
// dalam urutan input; satu request gagal berarti seluruh batch gagal,
// tidak ada partial result.
func (h *ProjectCheckHandler) Check(c *fiber.Ctx) error {
	var req projectCheckReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}
	if len(req.Projects) == 0 {
		return errJSON(c, fiber.StatusBadRequest, "at least one project is required")
	}

	results := make([]*openai.ProjectAnalysis, len(req.Projects))

	g, ctx := errgroup.WithContext(c.Context())
	for i, p := range req.Projects {
		i, p := i, p
		g.Go(func() error {
			analysis, err := h.AI.CheckProject(ctx, openai.ProjectContext{
				Title:       p.Title,
				Description: p.Description,
				LiveLink:    p.LiveLink,
				GithubLink:  p.GithubLink,
			})
			if err != nil {
				return err
			}
			results[i] = analysis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("[ProjectCheck] batch failed: %v", err)
		return errJSON(c, fiber.StatusInternalServerError, "failed to analyze projects")
	}

	return c.JSON(fiber.Map{"projects": results})
}
