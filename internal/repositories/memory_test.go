package repositories

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireflow/tracker/internal/models"
)

func newApp(company, role string, stage models.Stage, created time.Time) *models.Application {
	return &models.Application{
		ID:        uuid.New(),
		Company:   company,
		Role:      role,
		Stage:     stage,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestMemoryApplicationRepository_CRUD(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	app := newApp("Linear", "Senior Frontend Engineer", models.StageInterviewing, time.Now())

	require.NoError(t, repo.Create(app))

	got, err := repo.FindByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linear", got.Company)

	updated, err := repo.Update(app.ID, func(a *models.Application) {
		a.Notes = "Technical round on Tuesday"
	})
	require.NoError(t, err)
	assert.Equal(t, "Technical round on Tuesday", updated.Notes)

	again, err := repo.FindByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Technical round on Tuesday", again.Notes)

	require.NoError(t, repo.Delete(app.ID))
	_, err = repo.FindByID(app.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(app.ID), ErrNotFound)
}

func TestMemoryApplicationRepository_UpdateUnknown(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	called := false
	_, err := repo.Update(uuid.New(), func(a *models.Application) { called = true })
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, called)
}

func TestMemoryApplicationRepository_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	app := newApp("Linear", "Engineer", models.StageApplied, time.Now())
	require.NoError(t, repo.Create(app))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(app.ID, func(a *models.Application) {
				a.Notes += "x"
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.FindByID(app.ID)
	require.NoError(t, err)
	assert.Len(t, got.Notes, writers)
}

func TestMemoryApplicationRepository_ListFilters(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(newApp("Linear", "Senior Frontend Engineer", models.StageInterviewing, base)))
	require.NoError(t, repo.Create(newApp("Stripe", "Product Designer", models.StageApplied, base.Add(time.Hour))))
	require.NoError(t, repo.Create(newApp("OpenAI", "AI Interface Engineer", models.StageWishlist, base.Add(2*time.Hour))))

	all, err := repo.List(ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "OpenAI", all[0].Company, "newest first")

	applied, err := repo.List(ApplicationFilter{Stage: models.StageApplied})
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "Stripe", applied[0].Company)

	engineers, err := repo.List(ApplicationFilter{Search: "ENGINEER"})
	require.NoError(t, err)
	assert.Len(t, engineers, 2)
}

func TestMemoryApplicationRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	app := newApp("Linear", "Engineer", models.StageWishlist, time.Now())
	require.NoError(t, repo.Create(app))

	got, err := repo.FindByID(app.ID)
	require.NoError(t, err)
	got.Stage = models.StageHired

	stored, err := repo.FindByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageWishlist, stored.Stage)
}

func TestMemoryResumeRepository(t *testing.T) {
	repo := NewMemoryResumeRepository()
	older := &models.Resume{ID: uuid.New(), Name: "Main Resume", UpdatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Resume{ID: uuid.New(), Name: "Design-Focused CV", UpdatedAt: time.Now()}
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Design-Focused CV", list[0].Name)

	found, err := repo.FindByIDs([]uuid.UUID{older.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, older.ID, found[0].ID)

	require.NoError(t, repo.Delete(older.ID))
	_, err = repo.FindByID(older.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
