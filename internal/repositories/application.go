package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hireflow/tracker/internal/models"
)

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) List(filter ApplicationFilter) ([]models.Application, error) {
	query := r.db.Model(&models.Application{})
	if filter.Stage != "" {
		query = query.Where("stage = ?", filter.Stage)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(company) LIKE ? OR LOWER(role) LIKE ?", like, like)
	}

	var apps []models.Application
	if err := query.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Update locks the row for the duration of the transaction so concurrent
// edits of one application are serialised.
func (r *applicationRepository) Update(id uuid.UUID, mutate func(app *models.Application)) (*models.Application, error) {
	var app models.Application
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&app).Error
		if err != nil {
			return err
		}

		mutate(&app)
		app.ID = id
		return tx.Save(&app).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Application{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
