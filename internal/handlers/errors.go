package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hireflow/tracker/internal/models"
	"hireflow/tracker/internal/repositories"
	"hireflow/tracker/internal/services"
	"hireflow/tracker/internal/validation"
)

// respondError maps service errors onto HTTP status codes.
func respondError(c *fiber.Ctx, err error) error {
	var failure *services.AdapterFailure
	if errors.As(err, &failure) {
		status := fiber.StatusUnprocessableEntity
		if failure.Kind == services.FailureTransport {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"error":     failure.UserMessage(),
			"kind":      failure.Kind,
			"retryable": failure.Retryable(),
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, services.ErrInvalidStage),
		errors.Is(err, services.ErrUnsupportedFile),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrMissingJobDescription),
		errors.Is(err, services.ErrEmptyResume):
		status = fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, services.ErrAnalysisNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrPanelBusy):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrIndexDisabled),
		errors.Is(err, services.ErrRunnerStopped):
		status = fiber.StatusServiceUnavailable
	default:
		logrus.WithError(err).WithField("path", c.Path()).Error("❌ Request failed")
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+param+" format")
	}
	return id, nil
}

// parseBody decodes the JSON body into req and validates it.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}
	return validation.Struct(req)
}

func analysisResponse(a *services.Analysis) models.AnalysisResponse {
	return models.AnalysisResponse{
		ID:     a.ID.String(),
		Panel:  a.Panel,
		Status: string(a.Status),
	}
}

func analysisState(a *services.Analysis) models.AnalysisStateResponse {
	resp := models.AnalysisStateResponse{
		ID:     a.ID.String(),
		Panel:  a.Panel,
		Status: string(a.Status),
	}

	switch a.Status {
	case services.AnalysisCompleted:
		resp.Result = a.Result
	case services.AnalysisFailed:
		var failure *services.AdapterFailure
		if errors.As(a.Err, &failure) {
			resp.Error = failure.UserMessage()
			resp.ErrorKind = string(failure.Kind)
			resp.Retryable = failure.Retryable()
		} else if a.Err != nil {
			resp.Error = a.Err.Error()
		}
	}
	return resp
}
