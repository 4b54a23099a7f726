package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Applications *ApplicationHandler
	Resumes      *ResumeHandler
	AI           *AIHandler
	Analyses     *AnalysisHandler
}

// RegisterRoutes mounts the API under router, normally the /api/v1 group.
func RegisterRoutes(router fiber.Router, h Handlers) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	apps := router.Group("/applications")
	apps.Get("/", h.Applications.HandleList)
	apps.Post("/", h.Applications.HandleCreate)
	apps.Get("/:id", h.Applications.HandleGet)
	apps.Delete("/:id", h.Applications.HandleDelete)
	apps.Patch("/:id/stage", h.Applications.HandleMoveStage)
	apps.Patch("/:id/notes", h.Applications.HandleUpdateNotes)
	apps.Patch("/:id/resume-version", h.Applications.HandleSetResumeVersion)
	apps.Post("/:id/tailor", h.Applications.HandleStartTailoring)
	apps.Post("/:id/tailor/save", h.Applications.HandleSaveTailored)

	resumes := router.Group("/resumes")
	resumes.Get("/", h.Resumes.HandleList)
	resumes.Post("/", h.Resumes.HandleCreate)
	resumes.Post("/upload", h.Resumes.HandleUpload)
	resumes.Post("/recommend", h.Resumes.HandleRecommend)
	resumes.Get("/:id", h.Resumes.HandleGet)
	resumes.Delete("/:id", h.Resumes.HandleDelete)
	resumes.Post("/:id/ats-check", h.Resumes.HandleStartATSCheck)

	ai := router.Group("/ai")
	ai.Post("/tailor", h.AI.HandleTailor)
	ai.Post("/ats-check", h.AI.HandleATSCheck)
	ai.Post("/extract", h.AI.HandleExtract)

	router.Get("/analyses/:id", h.Analyses.HandleGet)
	router.Delete("/panels/:key", h.Analyses.HandleClosePanel)
	router.Get("/stats", h.Applications.HandleStats)
}
