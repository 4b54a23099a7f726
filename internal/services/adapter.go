package services

import (
	"context"
	"time"

	"hireflow/tracker/internal/models"
)

const (
	OpTailorResume = "tailor_resume"
	OpATSCheck     = "ats_check"
	OpExtractJob   = "extract_job"
)

// AIAdapter turns domain requests into structured Gemini calls. Every
// method returns either a complete result or an *AdapterFailure.
type AIAdapter interface {
	TailorResume(ctx context.Context, resumeText, jobDescriptionText string) (*models.TailorResult, error)
	PerformATSCheck(ctx context.Context, resumeText string) (*models.ATSCheckResult, error)
	ExtractJobDetailsFromURL(ctx context.Context, url string) (*models.JobExtractionResult, error)
}

type aiAdapter struct {
	generator     StructuredGenerator
	promptBuilder *PromptBuilder
	timeout       time.Duration
}

// NewAIAdapter bounds every call by timeout. A zero timeout means the
// caller's context is the only limit.
func NewAIAdapter(generator StructuredGenerator, timeout time.Duration) AIAdapter {
	return &aiAdapter{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
	}
}

// TailorResume implements AIAdapter. Inputs are assumed non-empty.
func (a *aiAdapter) TailorResume(ctx context.Context, resumeText, jobDescriptionText string) (*models.TailorResult, error) {
	return runStructured[models.TailorResult](ctx, a.generator, a.timeout, StructuredRequest{
		Op:          OpTailorResume,
		Prompt:      a.promptBuilder.BuildTailorPrompt(resumeText, jobDescriptionText),
		Schema:      tailorSchema(),
		Temperature: 0.3,
	})
}

// PerformATSCheck implements AIAdapter.
func (a *aiAdapter) PerformATSCheck(ctx context.Context, resumeText string) (*models.ATSCheckResult, error) {
	return runStructured[models.ATSCheckResult](ctx, a.generator, a.timeout, StructuredRequest{
		Op:          OpATSCheck,
		Prompt:      a.promptBuilder.BuildATSCheckPrompt(resumeText),
		Schema:      atsCheckSchema(),
		Temperature: 0.2,
	})
}

// ExtractJobDetailsFromURL implements AIAdapter. The model gets the search
// tool so it can read the page behind url.
func (a *aiAdapter) ExtractJobDetailsFromURL(ctx context.Context, url string) (*models.JobExtractionResult, error) {
	return runStructured[models.JobExtractionResult](ctx, a.generator, a.timeout, StructuredRequest{
		Op:          OpExtractJob,
		Prompt:      a.promptBuilder.BuildJobExtractionPrompt(url),
		Schema:      jobExtractionSchema(),
		WithSearch:  true,
		Temperature: 0,
	})
}
