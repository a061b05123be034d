package chat

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrBusinessNotFound     = errors.New("business not found")
	ErrEmptyContent         = errors.New("message content cannot be empty")
	ErrOwnBusiness          = errors.New("cannot message your own business")
)

type ChatRepository interface {
	GetOrCreateConversation(ctx context.Context, customerID, businessID int64) (*domain.Conversation, error)
	GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error)
	GetConversationsForUser(ctx context.Context, userID int64) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, m *domain.ChatMessage) error
	GetMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.ChatMessage, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID int64) error
}

type BusinessDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

type OfflineNotifier interface {
	NotifyNewChatMessage(ctx context.Context, userID, conversationID, messageID int64) error
}

// Service handles conversations between customers and businesses.
// A conversation is keyed by the customer and business pair; the
// business side is whoever owns the business.
type Service struct {
	chats      ChatRepository
	businesses BusinessDirectory
	notifs     OfflineNotifier
}

func NewService(chats ChatRepository, businesses BusinessDirectory, notifs OfflineNotifier) *Service {
	return &Service{chats: chats, businesses: businesses, notifs: notifs}
}

func (s *Service) StartConversation(ctx context.Context, customerID int64, req StartConversationRequest) (*domain.Conversation, *domain.ChatMessage, error) {
	b, err := s.businesses.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBusinessNotFound
		}
		return nil, nil, err
	}
	if b.OwnerID == customerID {
		return nil, nil, ErrOwnBusiness
	}

	conv, err := s.chats.GetOrCreateConversation(ctx, customerID, req.BusinessID)
	if err != nil {
		return nil, nil, err
	}

	var msg *domain.ChatMessage
	if strings.TrimSpace(req.InitialMessage) != "" {
		msg, err = s.SendMessage(ctx, customerID, conv.ID, SendMessageRequest{Content: req.InitialMessage})
		if err != nil {
			return nil, nil, err
		}
	}

	return conv, msg, nil
}

func (s *Service) GetUserConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	return s.chats.GetConversationsForUser(ctx, userID)
}

func (s *Service) SendMessage(ctx context.Context, senderID, conversationID int64, req SendMessageRequest) (*domain.ChatMessage, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	conv, _, err := s.conversationFor(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *Service) GetMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]domain.ChatMessage, error) {
	if _, _, err := s.conversationFor(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.chats.GetMessages(ctx, conversationID, limit, offset)
}

func (s *Service) MarkAsRead(ctx context.Context, userID, conversationID int64) error {
	if _, _, err := s.conversationFor(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.chats.MarkMessagesRead(ctx, conversationID, userID)
}

// RecipientID resolves the other party of a conversation: the business
// owner when the sender is the customer, and vice versa.
func (s *Service) RecipientID(ctx context.Context, conv *domain.Conversation, senderID int64) (int64, error) {
	b, err := s.businesses.GetByID(ctx, conv.BusinessID)
	if err != nil {
		return 0, err
	}
	if senderID == conv.CustomerID {
		return b.OwnerID, nil
	}
	return conv.CustomerID, nil
}

func (s *Service) GetConversation(ctx context.Context, userID, conversationID int64) (*domain.Conversation, error) {
	conv, _, err := s.conversationFor(ctx, userID, conversationID)
	return conv, err
}

func (s *Service) NotifyIfOffline(ctx context.Context, recipientID int64, conv *domain.Conversation, msg *domain.ChatMessage) {
	if s.notifs == nil {
		return
	}
	_ = s.notifs.NotifyNewChatMessage(ctx, recipientID, conv.ID, msg.ID)
}

// conversationFor loads the conversation and checks the user is one of
// its two parties.
func (s *Service) conversationFor(ctx context.Context, userID, conversationID int64) (*domain.Conversation, *domain.Business, error) {
	conv, err := s.chats.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrConversationNotFound
		}
		return nil, nil, err
	}

	b, err := s.businesses.GetByID(ctx, conv.BusinessID)
	if err != nil {
		return nil, nil, err
	}

	if conv.CustomerID != userID && b.OwnerID != userID {
		return nil, nil, ErrNotParticipant
	}
	return conv, b, nil
}
