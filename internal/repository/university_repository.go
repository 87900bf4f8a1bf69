package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"counsellor/internal/model"
)

// UniversityFilter narrows a catalog listing. Zero values mean "no filter".
type UniversityFilter struct {
	Country   string
	BudgetMax decimal.Decimal
	Program   string
	Countries []string
}

// UniversityRepository defines read access to the university catalog.
type UniversityRepository interface {
	FindByID(ctx context.Context, id uint) (*model.University, error)
	List(ctx context.Context, filter UniversityFilter) ([]model.University, error)
	Upsert(ctx context.Context, university *model.University) error
}

type universityRepository struct {
	db *gorm.DB
}

// NewUniversityRepository creates a new university repository.
func NewUniversityRepository(db *gorm.DB) UniversityRepository {
	return &universityRepository{db: db}
}

// FindByID finds a university by ID.
func (r *universityRepository) FindByID(ctx context.Context, id uint) (*model.University, error) {
	var university model.University
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&university).Error; err != nil {
		return nil, err
	}
	return &university, nil
}

// List returns catalog records matching the filter, ordered by ID for a
// stable base ordering.
func (r *universityRepository) List(ctx context.Context, filter UniversityFilter) ([]model.University, error) {
	query := r.db.WithContext(ctx).Model(&model.University{})

	if filter.Country != "" {
		query = query.Where("country LIKE ?", "%"+filter.Country+"%")
	}
	if len(filter.Countries) > 0 {
		query = query.Where("country IN ?", filter.Countries)
	}
	if !filter.BudgetMax.IsZero() {
		query = query.Where("tuition_max <= ?", filter.BudgetMax)
	}
	if filter.Program != "" {
		query = query.Where("programs LIKE ?", "%"+filter.Program+"%")
	}

	var universities []model.University
	if err := query.Order("id").Find(&universities).Error; err != nil {
		return nil, err
	}
	return universities, nil
}

// Upsert inserts a university or updates it by name. Used by the seeder.
func (r *universityRepository) Upsert(ctx context.Context, university *model.University) error {
	var existing model.University
	err := r.db.WithContext(ctx).Where("name = ?", university.Name).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(university).Error
	}
	if err != nil {
		return err
	}
	university.ID = existing.ID
	return r.db.WithContext(ctx).Save(university).Error
}
