package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hireflow/tracker/internal/models"
	"hireflow/tracker/internal/repositories"
	"hireflow/tracker/internal/validation"
)

// Analysis operation names used in panel keys.
const (
	PanelTailor   = "tailor"
	PanelATSCheck = "ats"
)

type TrackerService interface {
	AddApplication(req *models.CreateApplicationRequest) (*models.Application, error)
	ListApplications(filter repositories.ApplicationFilter) ([]models.Application, error)
	GetApplication(id uuid.UUID) (*models.Application, error)
	DeleteApplication(id uuid.UUID) error
	MoveStage(id uuid.UUID, stage models.Stage) (*models.Application, error)
	UpdateNotes(id uuid.UUID, notes string) (*models.Application, error)
	SetResumeVersion(id uuid.UUID, label string) (*models.Application, error)
	SaveTailoredVersion(id uuid.UUID) (*models.Application, error)
	Stats() (*models.DashboardStats, error)

	AddResume(ctx context.Context, req *models.CreateResumeRequest) (*models.Resume, error)
	ImportResumePDF(ctx context.Context, file *multipart.FileHeader, name, version string) (*models.Resume, error)
	ListResumes() ([]models.Resume, error)
	GetResume(id uuid.UUID) (*models.Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error
	RecommendResumes(ctx context.Context, jobDescription string, limit int) ([]models.ResumeRecommendation, error)

	StartTailoring(appID, resumeID uuid.UUID) (*Analysis, error)
	StartATSCheck(resumeID uuid.UUID) (*Analysis, error)
	GetAnalysis(id uuid.UUID) (*Analysis, error)
	ClosePanel(key string) bool
}

// TrackerDeps wires a TrackerService. Index, Storage and Parser may be nil;
// the features that need them then report an error.
type TrackerDeps struct {
	Applications repositories.ApplicationRepository
	Resumes      repositories.ResumeRepository
	Adapter      AIAdapter
	Runner       AnalysisRunner
	Index        ResumeIndex
	Storage      StorageService
	Parser       PDFParser
}

type trackerService struct {
	apps    repositories.ApplicationRepository
	resumes repositories.ResumeRepository
	adapter AIAdapter
	runner  AnalysisRunner
	index   ResumeIndex
	storage StorageService
	parser  PDFParser
	now     func() time.Time
}

func NewTrackerService(deps TrackerDeps) TrackerService {
	return &trackerService{
		apps:    deps.Applications,
		resumes: deps.Resumes,
		adapter: deps.Adapter,
		runner:  deps.Runner,
		index:   deps.Index,
		storage: deps.Storage,
		parser:  deps.Parser,
		now:     time.Now,
	}
}

func (s *trackerService) AddApplication(req *models.CreateApplicationRequest) (*models.Application, error) {
	req.Company = strings.TrimSpace(req.Company)
	req.Role = strings.TrimSpace(req.Role)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := s.now()
	app := &models.Application{
		ID:          uuid.New(),
		Company:     req.Company,
		Role:        req.Role,
		Location:    req.Location,
		Stage:       models.StageWishlist,
		DateApplied: req.DateApplied,
		SalaryRange: req.SalaryRange,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if app.DateApplied == "" {
		app.DateApplied = now.Format("2006-01-02")
	}
	if app.LogoURL == "" {
		app.LogoURL = models.DefaultLogoURL(app.Company)
	}

	if err := s.apps.Create(app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"application_id": app.ID,
		"company":        app.Company,
	}).Info("📝 Application added")
	return app, nil
}

func (s *trackerService) ListApplications(filter repositories.ApplicationFilter) ([]models.Application, error) {
	if filter.Stage != "" && !filter.Stage.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, filter.Stage)
	}
	return s.apps.List(filter)
}

func (s *trackerService) GetApplication(id uuid.UUID) (*models.Application, error) {
	return s.apps.FindByID(id)
}

// DeleteApplication also closes any analysis still running for it.
func (s *trackerService) DeleteApplication(id uuid.UUID) error {
	if err := s.apps.Delete(id); err != nil {
		return err
	}
	s.runner.Close(PanelKey(id, PanelTailor))
	return nil
}

func (s *trackerService) MoveStage(id uuid.UUID, stage models.Stage) (*models.Application, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}
	return s.updateApplication(id, func(app *models.Application) {
		app.Stage = stage
	})
}

func (s *trackerService) UpdateNotes(id uuid.UUID, notes string) (*models.Application, error) {
	return s.updateApplication(id, func(app *models.Application) {
		app.Notes = notes
	})
}

func (s *trackerService) SetResumeVersion(id uuid.UUID, label string) (*models.Application, error) {
	return s.updateApplication(id, func(app *models.Application) {
		app.ResumeVersion = label
	})
}

// SaveTailoredVersion records that a tailored resume was accepted.
func (s *trackerService) SaveTailoredVersion(id uuid.UUID) (*models.Application, error) {
	return s.updateApplication(id, func(app *models.Application) {
		app.ResumeVersion = models.TailoredVersionLabel(app.Company)
	})
}

func (s *trackerService) updateApplication(id uuid.UUID, mutate func(*models.Application)) (*models.Application, error) {
	now := s.now()
	return s.apps.Update(id, func(app *models.Application) {
		mutate(app)
		app.UpdatedAt = now
	})
}

func (s *trackerService) Stats() (*models.DashboardStats, error) {
	apps, err := s.apps.List(repositories.ApplicationFilter{})
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{TotalApplied: len(apps)}
	active := 0
	for _, app := range apps {
		switch app.Stage {
		case models.StageInterviewing:
			stats.InterviewsScheduled++
		case models.StageOffer:
			stats.OffersReceived++
		}
		if app.Stage != models.StageWishlist {
			active++
		}
	}

	total := len(apps)
	if total == 0 {
		total = 1
	}
	stats.SuccessRate = int(math.Round(float64(active) / float64(total) * 100))
	return stats, nil
}

func (s *trackerService) AddResume(ctx context.Context, req *models.CreateResumeRequest) (*models.Resume, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.createResume(ctx, req.Name, req.Content, req.Version, "")
}

// ImportResumePDF stores an uploaded PDF and saves its text as a resume.
func (s *trackerService) ImportResumePDF(ctx context.Context, file *multipart.FileHeader, name, version string) (*models.Resume, error) {
	if s.storage == nil || s.parser == nil {
		return nil, errors.New("resume upload is not configured")
	}

	filename, path, err := s.storage.SaveFile(file)
	if err != nil {
		return nil, err
	}

	content, err := s.parser.ExtractText(path)
	if err != nil {
		s.discardUpload(filename)
		return nil, fmt.Errorf("failed to read resume PDF: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}
	resume, err := s.createResume(ctx, name, content.Text, version, filename)
	if err != nil {
		s.discardUpload(filename)
		return nil, err
	}
	return resume, nil
}

func (s *trackerService) discardUpload(filename string) {
	if err := s.storage.DeleteFile(filename); err != nil {
		logrus.WithError(err).WithField("file", filename).Warn("⚠️ Failed to remove upload")
	}
}

func (s *trackerService) createResume(ctx context.Context, name, content, version, sourceFile string) (*models.Resume, error) {
	now := s.now()
	resume := &models.Resume{
		ID:         uuid.New(),
		Name:       name,
		Content:    content,
		Version:    version,
		SourceFile: sourceFile,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if resume.Version == "" {
		resume.Version = "v1"
	}

	if err := s.resumes.Create(resume); err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}

	// The index is a recommendation aid; a failure here must not lose the resume.
	if s.index != nil {
		if err := s.index.IndexResume(ctx, resume); err != nil {
			logrus.WithError(err).WithField("resume_id", resume.ID).Warn("⚠️ Failed to index resume")
		}
	}

	logrus.WithField("resume_id", resume.ID).Info("📄 Resume saved")
	return resume, nil
}

func (s *trackerService) ListResumes() ([]models.Resume, error) {
	return s.resumes.List()
}

func (s *trackerService) GetResume(id uuid.UUID) (*models.Resume, error) {
	return s.resumes.FindByID(id)
}

func (s *trackerService) DeleteResume(ctx context.Context, id uuid.UUID) error {
	resume, err := s.resumes.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.resumes.Delete(id); err != nil {
		return err
	}
	s.runner.Close(PanelKey(id, PanelATSCheck))

	if s.index != nil {
		if err := s.index.Remove(ctx, id.String()); err != nil {
			logrus.WithError(err).WithField("resume_id", id).Warn("⚠️ Failed to unindex resume")
		}
	}
	if resume.SourceFile != "" && s.storage != nil {
		if err := s.storage.DeleteFile(resume.SourceFile); err != nil {
			logrus.WithError(err).WithField("resume_id", id).Warn("⚠️ Failed to delete resume file")
		}
	}
	return nil
}

func (s *trackerService) RecommendResumes(ctx context.Context, jobDescription string, limit int) ([]models.ResumeRecommendation, error) {
	if s.index == nil {
		return nil, ErrIndexDisabled
	}

	matches, err := s.index.Recommend(ctx, jobDescription, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		if id, err := uuid.Parse(m.ResumeID); err == nil {
			ids = append(ids, id)
		}
	}
	resumes, err := s.resumes.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Resume, len(resumes))
	for _, r := range resumes {
		byID[r.ID.String()] = r
	}

	// Matches for resumes deleted since indexing are skipped.
	out := make([]models.ResumeRecommendation, 0, len(matches))
	for _, m := range matches {
		r, ok := byID[m.ResumeID]
		if !ok {
			continue
		}
		out = append(out, models.ResumeRecommendation{
			ResumeID: m.ResumeID,
			Name:     r.Name,
			Version:  r.Version,
			Score:    m.Score,
		})
	}
	return out, nil
}

// StartTailoring queues a tailoring of resumeID against the application's
// job description. The panel key is "<application id>:tailor".
func (s *trackerService) StartTailoring(appID, resumeID uuid.UUID) (*Analysis, error) {
	app, err := s.apps.FindByID(appID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(app.Description) == "" {
		return nil, ErrMissingJobDescription
	}
	resume, err := s.resumes.FindByID(resumeID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resume.Content) == "" {
		return nil, ErrEmptyResume
	}

	resumeText, jobDescription := resume.Content, app.Description
	return s.runner.Submit(PanelKey(appID, PanelTailor), func(ctx context.Context) (interface{}, error) {
		return s.adapter.TailorResume(ctx, resumeText, jobDescription)
	})
}

// StartATSCheck queues an ATS check. The panel key is "<resume id>:ats".
func (s *trackerService) StartATSCheck(resumeID uuid.UUID) (*Analysis, error) {
	resume, err := s.resumes.FindByID(resumeID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resume.Content) == "" {
		return nil, ErrEmptyResume
	}

	resumeText := resume.Content
	return s.runner.Submit(PanelKey(resumeID, PanelATSCheck), func(ctx context.Context) (interface{}, error) {
		return s.adapter.PerformATSCheck(ctx, resumeText)
	})
}

func (s *trackerService) GetAnalysis(id uuid.UUID) (*Analysis, error) {
	return s.runner.Get(id)
}

func (s *trackerService) ClosePanel(key string) bool {
	return s.runner.Close(key)
}
