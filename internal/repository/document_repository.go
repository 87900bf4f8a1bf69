package repository

import (
	"context"

	"gorm.io/gorm"

	"counsellor/internal/model"
)

// DocumentRepository defines document persistence operations.
type DocumentRepository interface {
	Create(ctx context.Context, document *model.Document) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Document, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Document, error)
	Delete(ctx context.Context, document *model.Document) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create creates a new document record.
func (r *documentRepository) Create(ctx context.Context, document *model.Document) error {
	return r.db.WithContext(ctx).Create(document).Error
}

// FindByIDAndUser finds a document owned by the given user.
func (r *documentRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Document, error) {
	var document model.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&document).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// ListByUser lists a user's documents, newest first.
func (r *documentRepository) ListByUser(ctx context.Context, userID uint) ([]model.Document, error) {
	var documents []model.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// Delete removes a document record.
func (r *documentRepository) Delete(ctx context.Context, document *model.Document) error {
	return r.db.WithContext(ctx).Delete(document).Error
}
