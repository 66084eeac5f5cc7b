package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/services/openai"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/upwork"
)

type jobAnalyzer interface {
	AnalyzeJobHTML(ctx context.Context, html string) (*upwork.AnalizedUpworkJobData, error)
}

// AnalyzeHandler is the stateless extraction endpoint: raw HTML in,
// structured AnalizedUpworkJobData out.
type AnalyzeHandler struct {
	AI jobAnalyzer
}

type analyzeReq struct {
	HTML string `json:"html"`
}

func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.HTML) == "" {
		return errJSON(c, fiber.StatusBadRequest, "html is required")
	}

	data, err := h.AI.AnalyzeJobHTML(c.Context(), req.HTML)
	if err != nil {
		// detail kegagalan upstream cuma masuk log, jangan ke client
		var formatErr *openai.UpstreamFormatError
		if errors.As(err, &formatErr) {
			log.Printf("[Analyze] upstream returned malformed content: %v", formatErr.Err)
		} else {
			log.Printf("[Analyze] extraction failed: %v", err)
		}
		return errJSON(c, fiber.StatusInternalServerError, "failed to analyze job details")
	}

	return c.JSON(data)
}
