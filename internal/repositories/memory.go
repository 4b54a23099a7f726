package repositories

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"hireflow/tracker/internal/models"
)

type memoryApplicationRepository struct {
	mu   sync.RWMutex
	apps map[uuid.UUID]models.Application
}

// NewMemoryApplicationRepository keeps applications in process memory.
func NewMemoryApplicationRepository() ApplicationRepository {
	return &memoryApplicationRepository{apps: make(map[uuid.UUID]models.Application)}
}

func (r *memoryApplicationRepository) Create(app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = *app
	return nil
}

func (r *memoryApplicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &app, nil
}

// List returns newest first, matching the board which prepends new cards.
func (r *memoryApplicationRepository) List(filter ApplicationFilter) ([]models.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Application, 0, len(r.apps))
	for _, app := range r.apps {
		if filter.Stage != "" && app.Stage != filter.Stage {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(app.Company), search) &&
			!strings.Contains(strings.ToLower(app.Role), search) {
			continue
		}
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryApplicationRepository) Update(id uuid.UUID, mutate func(app *models.Application)) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	mutate(&app)
	app.ID = id
	r.apps[id] = app
	return &app, nil
}

func (r *memoryApplicationRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

type memoryResumeRepository struct {
	mu      sync.RWMutex
	resumes map[uuid.UUID]models.Resume
}

// NewMemoryResumeRepository keeps the resume library in process memory.
func NewMemoryResumeRepository() ResumeRepository {
	return &memoryResumeRepository{resumes: make(map[uuid.UUID]models.Resume)}
}

func (r *memoryResumeRepository) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[resume.ID] = *resume
	return nil
}

func (r *memoryResumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &resume, nil
}

func (r *memoryResumeRepository) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Resume, 0, len(ids))
	for _, id := range ids {
		if resume, ok := r.resumes[id]; ok {
			out = append(out, resume)
		}
	}
	return out, nil
}

func (r *memoryResumeRepository) List() ([]models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Resume, 0, len(r.resumes))
	for _, resume := range r.resumes {
		out = append(out, resume)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *memoryResumeRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[id]; !ok {
		return ErrNotFound
	}
	delete(r.resumes, id)
	return nil
}
