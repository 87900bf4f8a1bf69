package repository

import (
	"context"

	"gorm.io/gorm"

	"counsellor/internal/model"
)

// ShortlistRepository defines shortlist persistence operations.
type ShortlistRepository interface {
	Create(ctx context.Context, entry *model.ShortlistEntry) error
	Update(ctx context.Context, entry *model.ShortlistEntry) error
	Delete(ctx context.Context, entry *model.ShortlistEntry) error
	FindByUserAndUniversity(ctx context.Context, userID, universityID uint) (*model.ShortlistEntry, error)
	ListByUser(ctx context.Context, userID uint) ([]model.ShortlistEntry, error)
}

type shortlistRepository struct {
	db *gorm.DB
}

// NewShortlistRepository creates a new shortlist repository.
func NewShortlistRepository(db *gorm.DB) ShortlistRepository {
	return &shortlistRepository{db: db}
}

// Create creates a new shortlist entry. The composite unique index on
// (user_id, university_id) surfaces concurrent duplicates as
// gorm.ErrDuplicatedKey.
func (r *shortlistRepository) Create(ctx context.Context, entry *model.ShortlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update updates an existing shortlist entry.
func (r *shortlistRepository) Update(ctx context.Context, entry *model.ShortlistEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a shortlist entry.
func (r *shortlistRepository) Delete(ctx context.Context, entry *model.ShortlistEntry) error {
	return r.db.WithContext(ctx).Delete(entry).Error
}

// FindByUserAndUniversity finds the entry for a (user, university) pair.
func (r *shortlistRepository) FindByUserAndUniversity(ctx context.Context, userID, universityID uint) (*model.ShortlistEntry, error) {
	var entry model.ShortlistEntry
	err := r.db.WithContext(ctx).Preload("University").
		Where("user_id = ? AND university_id = ?", userID, universityID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByUser lists a user's shortlist with universities preloaded.
func (r *shortlistRepository) ListByUser(ctx context.Context, userID uint) ([]model.ShortlistEntry, error) {
	var entries []model.ShortlistEntry
	err := r.db.WithContext(ctx).Preload("University").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
