package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"hireflow/tracker/internal/models"
	"hireflow/tracker/internal/services"
)

type ResumeHandler struct {
	tracker     services.TrackerService
	maxFileSize int64
}

func NewResumeHandler(tracker services.TrackerService, maxFileSize int64) *ResumeHandler {
	return &ResumeHandler{
		tracker:     tracker,
		maxFileSize: maxFileSize,
	}
}

func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	resumes, err := h.tracker.ListResumes()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"resumes": resumes})
}

func (h *ResumeHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateResumeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	resume, err := h.tracker.AddResume(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resume)
}

// HandleUpload handles POST /resumes/upload with a multipart "file" field.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "missing 'file' field with a PDF resume"))
	}
	if file.Size > h.maxFileSize {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize)))
	}

	resume, err := h.tracker.ImportResumePDF(c.UserContext(), file, c.FormValue("name"), c.FormValue("version"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resume)
}

func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	resume, err := h.tracker.GetResume(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resume)
}

func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.tracker.DeleteResume(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleStartATSCheck handles POST /resumes/:id/ats-check
func (h *ResumeHandler) HandleStartATSCheck(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	analysis, err := h.tracker.StartATSCheck(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(analysisResponse(analysis))
}

func (h *ResumeHandler) HandleRecommend(c *fiber.Ctx) error {
	var req models.RecommendRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	recs, err := h.tracker.RecommendResumes(c.UserContext(), req.JobDescription, req.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"recommendations": recs})
}
