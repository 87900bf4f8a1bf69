package repository

import (
	"context"

	"gorm.io/gorm"

	"counsellor/internal/model"
)

// ConversationRepository defines chat history persistence operations.
type ConversationRepository interface {
	Create(ctx context.Context, message *model.Conversation) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]model.Conversation, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create appends a message to the user's history.
func (r *conversationRepository) Create(ctx context.Context, message *model.Conversation) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListByUser returns the most recent limit messages in chronological order.
// A limit of 0 returns the full history.
func (r *conversationRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.Conversation, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []model.Conversation
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// DeleteByUser removes the user's entire history.
func (r *conversationRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Conversation{}).Error
}
