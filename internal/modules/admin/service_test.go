package admin

import (
	"context"
	"testing"

	"marketplace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockBusinessRepo struct {
	mock.Mock
}

func (m *mockBusinessRepo) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *mockBusinessRepo) GetPending(ctx context.Context, limit, offset int) ([]domain.Business, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Business), args.Get(1).(int64), args.Error(2)
}

func (m *mockBusinessRepo) UpdateStatus(ctx context.Context, id int64, status domain.BusinessStatus, reason string) error {
	args := m.Called(ctx, id, status, reason)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type mockReviewModerator struct {
	mock.Mock
}

func (m *mockReviewModerator) SetHidden(ctx context.Context, reviewID int64, hidden bool) error {
	args := m.Called(ctx, reviewID, hidden)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyBusinessApproved(ctx context.Context, ownerUserID, businessID int64) error {
	args := m.Called(ctx, ownerUserID, businessID)
	return args.Error(0)
}

func (m *mockNotifier) NotifyBusinessRejected(ctx context.Context, ownerUserID, businessID int64, reason string) error {
	args := m.Called(ctx, ownerUserID, businessID, reason)
	return args.Error(0)
}

func pendingBakery() *domain.Business {
	return &domain.Business{ID: 1, OwnerID: 20, Name: "Corner Bakery", Status: domain.BusinessPending}
}

func TestService_ApproveBusiness_NotifiesOwner(t *testing.T) {
	businesses := new(mockBusinessRepo)
	notifs := new(mockNotifier)
	svc := NewService(businesses, new(mockUserRepo), new(mockReviewModerator), notifs)
	ctx := context.Background()

	businesses.On("GetByID", ctx, int64(1)).Return(pendingBakery(), nil)
	businesses.On("UpdateStatus", ctx, int64(1), domain.BusinessApproved, "").Return(nil)
	notifs.On("NotifyBusinessApproved", ctx, int64(20), int64(1)).Return(nil)

	b, err := svc.ApproveBusiness(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.BusinessApproved, b.Status)
	notifs.AssertExpectations(t)
}

func TestService_ApproveBusiness_AlreadyApproved(t *testing.T) {
	businesses := new(mockBusinessRepo)
	svc := NewService(businesses, new(mockUserRepo), new(mockReviewModerator), nil)
	ctx := context.Background()

	b := pendingBakery()
	b.Status = domain.BusinessApproved
	businesses.On("GetByID", ctx, int64(1)).Return(b, nil)

	_, err := svc.ApproveBusiness(ctx, 1)

	assert.ErrorIs(t, err, ErrAlreadyDecided)
	businesses.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RejectBusiness_RequiresReason(t *testing.T) {
	svc := NewService(new(mockBusinessRepo), new(mockUserRepo), new(mockReviewModerator), nil)

	_, err := svc.RejectBusiness(context.Background(), 1, "   ")

	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestService_RejectBusiness_ReasonStoredAndSent(t *testing.T) {
	businesses := new(mockBusinessRepo)
	notifs := new(mockNotifier)
	svc := NewService(businesses, new(mockUserRepo), new(mockReviewModerator), notifs)
	ctx := context.Background()

	businesses.On("GetByID", ctx, int64(1)).Return(pendingBakery(), nil)
	businesses.On("UpdateStatus", ctx, int64(1), domain.BusinessRejected, "incomplete address").Return(nil)
	notifs.On("NotifyBusinessRejected", ctx, int64(20), int64(1), "incomplete address").Return(nil)

	b, err := svc.RejectBusiness(ctx, 1, "incomplete address")

	assert.NoError(t, err)
	assert.Equal(t, domain.BusinessRejected, b.Status)
	assert.Equal(t, "incomplete address", b.RejectedReason)
	notifs.AssertExpectations(t)
}

func TestService_SetReviewHidden_DelegatesToModerator(t *testing.T) {
	reviews := new(mockReviewModerator)
	svc := NewService(new(mockBusinessRepo), new(mockUserRepo), reviews, nil)
	ctx := context.Background()

	reviews.On("SetHidden", ctx, int64(9), true).Return(nil)

	assert.NoError(t, svc.SetReviewHidden(ctx, 9, true))
	reviews.AssertExpectations(t)
}

func TestService_ListUsers_StripsPasswordHashes(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(new(mockBusinessRepo), users, new(mockReviewModerator), nil)
	ctx := context.Background()

	users.On("List", ctx, 20, 0).Return([]domain.User{
		{ID: 1, Email: "a@example.com", PasswordHash: "secret"},
		{ID: 2, Email: "b@example.com", PasswordHash: "secret"},
	}, int64(2), nil)

	list, total, err := svc.ListUsers(ctx, 1, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, u := range list {
		assert.Empty(t, u.PasswordHash)
	}
}
