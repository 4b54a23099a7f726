package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/tracker/internal/models"
	"hireflow/tracker/internal/repositories"
	"hireflow/tracker/internal/services"
)

type ApplicationHandler struct {
	tracker services.TrackerService
}

func NewApplicationHandler(tracker services.TrackerService) *ApplicationHandler {
	return &ApplicationHandler{tracker: tracker}
}

// HandleList handles GET /applications?stage=&q=
func (h *ApplicationHandler) HandleList(c *fiber.Ctx) error {
	apps, err := h.tracker.ListApplications(repositories.ApplicationFilter{
		Stage:  models.Stage(c.Query("stage")),
		Search: c.Query("q"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"applications": apps})
}

// HandleCreate handles POST /applications
func (h *ApplicationHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid request payload"))
	}

	app, err := h.tracker.AddApplication(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	app, err := h.tracker.GetApplication(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.tracker.DeleteApplication(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMoveStage handles PATCH /applications/:id/stage
func (h *ApplicationHandler) HandleMoveStage(c *fiber.Ctx) error {
	var req models.MoveStageRequest
	return h.update(c, &req, func(id uuid.UUID) (*models.Application, error) {
		return h.tracker.MoveStage(id, req.Stage)
	})
}

func (h *ApplicationHandler) HandleUpdateNotes(c *fiber.Ctx) error {
	var req models.UpdateNotesRequest
	return h.update(c, &req, func(id uuid.UUID) (*models.Application, error) {
		return h.tracker.UpdateNotes(id, req.Notes)
	})
}

func (h *ApplicationHandler) HandleSetResumeVersion(c *fiber.Ctx) error {
	var req models.ResumeVersionRequest
	return h.update(c, &req, func(id uuid.UUID) (*models.Application, error) {
		return h.tracker.SetResumeVersion(id, req.ResumeVersion)
	})
}

// HandleSaveTailored handles POST /applications/:id/tailor/save
func (h *ApplicationHandler) HandleSaveTailored(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	app, err := h.tracker.SaveTailoredVersion(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(app)
}

// HandleStartTailoring handles POST /applications/:id/tailor
func (h *ApplicationHandler) HandleStartTailoring(c *fiber.Ctx) error {
	appID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.TailorApplicationRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid resumeId format"))
	}

	analysis, err := h.tracker.StartTailoring(appID, resumeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(analysisResponse(analysis))
}

func (h *ApplicationHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.tracker.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (h *ApplicationHandler) update(c *fiber.Ctx, req interface{}, apply func(uuid.UUID) (*models.Application, error)) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := parseBody(c, req); err != nil {
		return respondError(c, err)
	}
	app, err := apply(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(app)
}
