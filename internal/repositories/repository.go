package repositories

import (
	"errors"

	"github.com/google/uuid"

	"hireflow/tracker/internal/models"
)

var ErrNotFound = errors.New("record not found")

// ApplicationFilter narrows List. Zero values match everything.
type ApplicationFilter struct {
	Stage  models.Stage
	Search string
}

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	List(filter ApplicationFilter) ([]models.Application, error)
	// Update applies mutate to the stored application as one atomic
	// read-modify-write and returns the result.
	Update(id uuid.UUID, mutate func(app *models.Application)) (*models.Application, error)
	Delete(id uuid.UUID) error
}

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByIDs(ids []uuid.UUID) ([]models.Resume, error)
	List() ([]models.Resume, error)
	Delete(id uuid.UUID) error
}
