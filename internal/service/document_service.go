package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "counsellor/internal/errors"
	"counsellor/internal/model"
	"counsellor/internal/repository"
)

// DocumentService handles the per-user document vault.
type DocumentService interface {
	List(ctx context.Context, userID uint) ([]model.Document, error)
	Upload(ctx context.Context, userID uint, filename, category string, size int64, content io.Reader) (*model.Document, error)
	Delete(ctx context.Context, userID, documentID uint) error
}

type documentService struct {
	documentRepo repository.DocumentRepository
	uploadDir    string
}

// NewDocumentService creates a new document service storing files under uploadDir.
func NewDocumentService(documentRepo repository.DocumentRepository, uploadDir string) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		uploadDir:    uploadDir,
	}
}

// List lists the caller's documents.
func (s *documentService) List(ctx context.Context, userID uint) ([]model.Document, error) {
	documents, err := s.documentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return documents, nil
}

// Upload stores the file on disk and records it. The stored name is
// prefixed with the owner and a timestamp to avoid collisions.
func (s *documentService) Upload(ctx context.Context, userID uint, filename, category string, size int64, content io.Reader) (*model.Document, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	storedName := fmt.Sprintf("%d_%s_%s", userID, time.Now().Format("20060102150405"), filepath.Base(filename))
	filePath := filepath.Join(s.uploadDir, storedName)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("write file: %w", err)
	}

	if category == "" {
		category = "academic"
	}

	document := &model.Document{
		UserID:   userID,
		Name:     filepath.Base(filename),
		Type:     fileType(filename),
		Size:     humanSize(size),
		Category: category,
		Status:   model.DocumentPending,
		FilePath: filePath,
	}
	if err := s.documentRepo.Create(ctx, document); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("create document: %w", err)
	}
	return document, nil
}

// Delete removes a document record and its file.
func (s *documentService) Delete(ctx context.Context, userID, documentID uint) error {
	document, err := s.documentRepo.FindByIDAndUser(ctx, documentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrDocumentNotFound
		}
		return fmt.Errorf("find document: %w", err)
	}

	if err := s.documentRepo.Delete(ctx, document); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if document.FilePath != "" {
		_ = os.Remove(document.FilePath)
	}
	return nil
}

func fileType(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.ToUpper(ext)
}

func humanSize(size int64) string {
	if size >= 1024*1024 {
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	}
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}
