package repository

import (
	"context"

	"marketplace/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetOrCreateConversation returns the single conversation between a
// customer and a business, creating it on first contact.
func (r *ChatRepository) GetOrCreateConversation(ctx context.Context, customerID, businessID int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND business_id = ?", customerID, businessID).
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	conv = domain.Conversation{CustomerID: customerID, BusinessID: businessID}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) GetConversationsForUser(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	var convs []domain.Conversation
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN businesses ON businesses.id = conversations.business_id").
		Where("conversations.customer_id = ? OR businesses.owner_id = ?", userID, userID).
		Order("conversations.created_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *ChatRepository) CreateMessage(ctx context.Context, m *domain.ChatMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ChatRepository) GetMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var msgs []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}
