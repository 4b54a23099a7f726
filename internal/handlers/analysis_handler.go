package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hireflow/tracker/internal/services"
)

type AnalysisHandler struct {
	tracker services.TrackerService
}

func NewAnalysisHandler(tracker services.TrackerService) *AnalysisHandler {
	return &AnalysisHandler{tracker: tracker}
}

// HandleGet handles GET /analyses/:id
func (h *AnalysisHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	analysis, err := h.tracker.GetAnalysis(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analysisState(analysis))
}

// HandleClosePanel handles DELETE /panels/:key. The in-flight call, if any,
// is cancelled and its result will not be stored.
func (h *AnalysisHandler) HandleClosePanel(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "panel key is required"))
	}
	return c.JSON(fiber.Map{
		"panel":     key,
		"cancelled": h.tracker.ClosePanel(key),
	})
}
