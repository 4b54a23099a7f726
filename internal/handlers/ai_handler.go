package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hireflow/tracker/internal/models"
	"hireflow/tracker/internal/services"
)

// AIHandler exposes the adapter directly. Each call blocks until the model
// answers or the adapter timeout fires.
type AIHandler struct {
	adapter services.AIAdapter
}

func NewAIHandler(adapter services.AIAdapter) *AIHandler {
	return &AIHandler{adapter: adapter}
}

// HandleTailor handles POST /ai/tailor
func (h *AIHandler) HandleTailor(c *fiber.Ctx) error {
	var req models.TailorRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.adapter.TailorResume(c.UserContext(), req.ResumeText, req.JobDescriptionText)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleATSCheck handles POST /ai/ats-check
func (h *AIHandler) HandleATSCheck(c *fiber.Ctx) error {
	var req models.ATSCheckRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.adapter.PerformATSCheck(c.UserContext(), req.ResumeText)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleExtract handles POST /ai/extract
func (h *AIHandler) HandleExtract(c *fiber.Ctx) error {
	var req models.ExtractRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.adapter.ExtractJobDetailsFromURL(c.UserContext(), req.URL)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
