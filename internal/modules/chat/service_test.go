package chat

import (
	"context"
	"testing"

	"marketplace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockChatRepo struct {
	mock.Mock
}

func (m *mockChatRepo) GetOrCreateConversation(ctx context.Context, customerID, businessID int64) (*domain.Conversation, error) {
	args := m.Called(ctx, customerID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *mockChatRepo) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *mockChatRepo) GetConversationsForUser(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *mockChatRepo) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil {
		msg.ID = 77
	}
	return args.Error(0)
}

func (m *mockChatRepo) GetMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *mockChatRepo) MarkMessagesRead(ctx context.Context, conversationID, readerID int64) error {
	args := m.Called(ctx, conversationID, readerID)
	return args.Error(0)
}

type mockBusinessDirectory struct {
	mock.Mock
}

func (m *mockBusinessDirectory) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func bakeryConversation() *domain.Conversation {
	return &domain.Conversation{ID: 5, CustomerID: 10, BusinessID: 1}
}

func bakery() *domain.Business {
	return &domain.Business{ID: 1, OwnerID: 20, Name: "Corner Bakery"}
}

func TestService_SendMessage_ParticipantsOnly(t *testing.T) {
	chats := new(mockChatRepo)
	businesses := new(mockBusinessDirectory)
	svc := NewService(chats, businesses, nil)
	ctx := context.Background()

	chats.On("GetConversationByID", ctx, int64(5)).Return(bakeryConversation(), nil)
	businesses.On("GetByID", ctx, int64(1)).Return(bakery(), nil)
	chats.On("CreateMessage", ctx, mock.AnythingOfType("*domain.ChatMessage")).Return(nil)

	// the customer can write
	msg, err := svc.SendMessage(ctx, 10, 5, SendMessageRequest{Content: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), msg.SenderID)

	// so can the business owner
	_, err = svc.SendMessage(ctx, 20, 5, SendMessageRequest{Content: "hello"})
	assert.NoError(t, err)

	// a stranger cannot
	_, err = svc.SendMessage(ctx, 99, 5, SendMessageRequest{Content: "spam"})
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestService_SendMessage_EmptyContent(t *testing.T) {
	svc := NewService(new(mockChatRepo), new(mockBusinessDirectory), nil)

	_, err := svc.SendMessage(context.Background(), 10, 5, SendMessageRequest{Content: "   "})

	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestService_StartConversation_OwnBusinessRejected(t *testing.T) {
	chats := new(mockChatRepo)
	businesses := new(mockBusinessDirectory)
	svc := NewService(chats, businesses, nil)
	ctx := context.Background()

	businesses.On("GetByID", ctx, int64(1)).Return(bakery(), nil)

	_, _, err := svc.StartConversation(ctx, 20, StartConversationRequest{BusinessID: 1})

	assert.ErrorIs(t, err, ErrOwnBusiness)
	chats.AssertNotCalled(t, "GetOrCreateConversation", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_StartConversation_WithInitialMessage(t *testing.T) {
	chats := new(mockChatRepo)
	businesses := new(mockBusinessDirectory)
	svc := NewService(chats, businesses, nil)
	ctx := context.Background()

	businesses.On("GetByID", ctx, int64(1)).Return(bakery(), nil)
	chats.On("GetOrCreateConversation", ctx, int64(10), int64(1)).Return(bakeryConversation(), nil)
	chats.On("GetConversationByID", ctx, int64(5)).Return(bakeryConversation(), nil)
	chats.On("CreateMessage", ctx, mock.AnythingOfType("*domain.ChatMessage")).Return(nil)

	conv, msg, err := svc.StartConversation(ctx, 10, StartConversationRequest{
		BusinessID:     1,
		InitialMessage: "is the sourdough fresh today?",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), conv.ID)
	assert.NotNil(t, msg)
	assert.Equal(t, "is the sourdough fresh today?", msg.Content)
}

func TestService_RecipientID(t *testing.T) {
	businesses := new(mockBusinessDirectory)
	svc := NewService(new(mockChatRepo), businesses, nil)
	ctx := context.Background()

	businesses.On("GetByID", ctx, int64(1)).Return(bakery(), nil)
	conv := bakeryConversation()

	got, err := svc.RecipientID(ctx, conv, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(20), got)

	got, err = svc.RecipientID(ctx, conv, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), got)
}
