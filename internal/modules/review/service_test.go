package review

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil && args.Error(0) == nil {
		rv.ID = 777 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByBusiness(ctx context.Context, businessID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) GetAllVisibleByBusiness(ctx context.Context, businessID int64) ([]domain.Review, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsByUserAndBusiness(ctx context.Context, userID, businessID int64) (bool, error) {
	args := m.Called(ctx, userID, businessID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, id int64, rating float64, comment string) (*domain.Review, error) {
	args := m.Called(ctx, id, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	args := m.Called(ctx, id, hidden)
	return args.Error(0)
}

func (m *MockReviewRepository) AddHelpfulVote(ctx context.Context, reviewID, userID int64) (int, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Int(0), args.Error(1)
}

type MockOrderGate struct {
	mock.Mock
}

func (m *MockOrderGate) HasDeliveredOrder(ctx context.Context, customerID, businessID int64) (bool, error) {
	args := m.Called(ctx, customerID, businessID)
	return args.Bool(0), args.Error(1)
}

type MockBusinessGate struct {
	mock.Mock
}

func (m *MockBusinessGate) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessGate) UpdateRatingSummary(ctx context.Context, id int64, s domain.RatingSummary) error {
	args := m.Called(ctx, id, s)
	return args.Error(0)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyNewReview(ctx context.Context, ownerUserID, businessID, reviewID int64, rating float64) error {
	args := m.Called(ctx, ownerUserID, businessID, reviewID, rating)
	return args.Error(0)
}

func newTestService() (*Service, *MockReviewRepository, *MockOrderGate, *MockBusinessGate) {
	reviews := new(MockReviewRepository)
	orders := new(MockOrderGate)
	businesses := new(MockBusinessGate)
	return NewService(reviews, orders, businesses, nil), reviews, orders, businesses
}

func TestService_Create_Success_RecomputesSummary(t *testing.T) {
	svc, reviews, orders, businesses := newTestService()
	ctx := context.Background()

	orders.On("HasDeliveredOrder", ctx, int64(10), int64(1)).Return(true, nil)
	reviews.On("ExistsByUserAndBusiness", ctx, int64(10), int64(1)).Return(false, nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil)
	reviews.On("GetAllVisibleByBusiness", ctx, int64(1)).
		Return(reviewsWithRatings(5, 5, 4, 3), nil)
	businesses.On("UpdateRatingSummary", ctx, int64(1), domain.RatingSummary{
		Average:     4.25,
		ReviewCount: 4,
		Counts:      domain.RatingCounts{5: 2, 4: 1, 3: 1, 2: 0, 1: 0},
	}).Return(nil)

	rv, err := svc.Create(ctx, 10, CreateReviewRequest{BusinessID: 1, Rating: 5, Comment: "great"})

	assert.NoError(t, err)
	assert.NotNil(t, rv)
	assert.Equal(t, int64(777), rv.ID)
	businesses.AssertExpectations(t)
	reviews.AssertExpectations(t)
}

func TestService_Create_WithoutDeliveredOrder(t *testing.T) {
	svc, _, orders, _ := newTestService()
	ctx := context.Background()

	orders.On("HasDeliveredOrder", ctx, int64(10), int64(1)).Return(false, nil)

	rv, err := svc.Create(ctx, 10, CreateReviewRequest{BusinessID: 1, Rating: 4})

	assert.Nil(t, rv)
	assert.ErrorIs(t, err, ErrReviewNotAllowed)
}

func TestService_Create_DuplicateReview(t *testing.T) {
	svc, reviews, orders, _ := newTestService()
	ctx := context.Background()

	orders.On("HasDeliveredOrder", ctx, int64(10), int64(1)).Return(true, nil)
	reviews.On("ExistsByUserAndBusiness", ctx, int64(10), int64(1)).Return(true, nil)

	rv, err := svc.Create(ctx, 10, CreateReviewRequest{BusinessID: 1, Rating: 4})

	assert.Nil(t, rv)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_Create_InvalidRating(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	for _, rating := range []float64{0, 0.5, 5.5, 6, 4.3, -1} {
		rv, err := svc.Create(ctx, 10, CreateReviewRequest{BusinessID: 1, Rating: rating})
		assert.Nil(t, rv, "rating %v", rating)
		assert.ErrorIs(t, err, ErrInvalidRequest, "rating %v", rating)
	}
}

func TestService_Create_AggregationFailureRetriesOnceThenSurfaces(t *testing.T) {
	svc, reviews, orders, businesses := newTestService()
	ctx := context.Background()

	orders.On("HasDeliveredOrder", ctx, int64(10), int64(1)).Return(true, nil)
	reviews.On("ExistsByUserAndBusiness", ctx, int64(10), int64(1)).Return(false, nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil)
	reviews.On("GetAllVisibleByBusiness", ctx, int64(1)).
		Return(nil, errors.New("connection reset")).Twice()

	rv, err := svc.Create(ctx, 10, CreateReviewRequest{BusinessID: 1, Rating: 4})

	// The review write itself is not rolled back.
	assert.NotNil(t, rv)
	assert.ErrorIs(t, err, ErrAggregationFailed)
	reviews.AssertNumberOfCalls(t, "GetAllVisibleByBusiness", 2)
	businesses.AssertNotCalled(t, "UpdateRatingSummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_AggregationRecoversOnRetry(t *testing.T) {
	svc, reviews, orders, businesses := newTestService()
	ctx := context.Background()

	orders.On("HasDeliveredOrder", ctx, int64(10), int64(1)).Return(true, nil)
	reviews.On("ExistsByUserAndBusiness", ctx, int64(10), int64(1)).Return(false, nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil)
	reviews.On("GetAllVisibleByBusiness", ctx, int64(1)).
		Return(nil, errors.New("timeout")).Once()
	reviews.On("GetAllVisibleByBusiness", ctx, int64(1)).
		Return(reviewsWithRatings(4), nil).Once()
	businesses.On("UpdateRatingSummary", ctx, int64(1), mock.Anything).Return(nil)

	_, err := svc.Create(ctx, 10, CreateReviewRequest{BusinessID: 1, Rating: 4})

	assert.NoError(t, err)
	businesses.AssertExpectations(t)
}

func TestService_Update_OnlyAuthor(t *testing.T) {
	svc, reviews, _, _ := newTestService()
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(5)).
		Return(&domain.Review{ID: 5, BusinessID: 1, UserID: 10, Rating: 4}, nil)

	rv, err := svc.Update(ctx, 5, 99, UpdateReviewRequest{Rating: 2})

	assert.Nil(t, rv)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Update_RatingChangeRecomputes(t *testing.T) {
	svc, reviews, _, businesses := newTestService()
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(5)).
		Return(&domain.Review{ID: 5, BusinessID: 1, UserID: 10, Rating: 4}, nil)
	reviews.On("Update", ctx, int64(5), 2.0, "meh").
		Return(&domain.Review{ID: 5, BusinessID: 1, UserID: 10, Rating: 2, Comment: "meh"}, nil)
	reviews.On("GetAllVisibleByBusiness", ctx, int64(1)).
		Return(reviewsWithRatings(2), nil)
	businesses.On("UpdateRatingSummary", ctx, int64(1), mock.Anything).Return(nil)

	rv, err := svc.Update(ctx, 5, 10, UpdateReviewRequest{Rating: 2, Comment: "meh"})

	assert.NoError(t, err)
	assert.Equal(t, 2.0, rv.Rating)
	businesses.AssertExpectations(t)
}

func TestService_Update_SameRatingSkipsRecompute(t *testing.T) {
	svc, reviews, _, businesses := newTestService()
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(5)).
		Return(&domain.Review{ID: 5, BusinessID: 1, UserID: 10, Rating: 4}, nil)
	reviews.On("Update", ctx, int64(5), 4.0, "updated text").
		Return(&domain.Review{ID: 5, BusinessID: 1, UserID: 10, Rating: 4, Comment: "updated text"}, nil)

	_, err := svc.Update(ctx, 5, 10, UpdateReviewRequest{Rating: 4, Comment: "updated text"})

	assert.NoError(t, err)
	businesses.AssertNotCalled(t, "UpdateRatingSummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete_RecomputesSummary(t *testing.T) {
	svc, reviews, _, businesses := newTestService()
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(5)).
		Return(&domain.Review{ID: 5, BusinessID: 1, UserID: 10, Rating: 4}, nil)
	reviews.On("Delete", ctx, int64(5)).Return(nil)
	reviews.On("GetAllVisibleByBusiness", ctx, int64(1)).Return([]domain.Review{}, nil)
	businesses.On("UpdateRatingSummary", ctx, int64(1), domain.RatingSummary{
		Average:     0,
		ReviewCount: 0,
		Counts:      domain.RatingCounts{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}).Return(nil)

	err := svc.Delete(ctx, 5, 10, false)

	assert.NoError(t, err)
	businesses.AssertExpectations(t)
}

func TestService_Delete_AdminCanDeleteAny(t *testing.T) {
	svc, reviews, _, businesses := newTestService()
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(5)).
		Return(&domain.Review{ID: 5, BusinessID: 1, UserID: 10, Rating: 4}, nil)
	reviews.On("Delete", ctx, int64(5)).Return(nil)
	reviews.On("GetAllVisibleByBusiness", ctx, int64(1)).Return([]domain.Review{}, nil)
	businesses.On("UpdateRatingSummary", ctx, int64(1), mock.Anything).Return(nil)

	err := svc.Delete(ctx, 5, 42, true)

	assert.NoError(t, err)
}

func TestService_Delete_NotFound(t *testing.T) {
	svc, reviews, _, _ := newTestService()
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(ctx, 5, 10, false)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SetHidden_RecomputesSummary(t *testing.T) {
	svc, reviews, _, businesses := newTestService()
	ctx := context.Background()

	reviews.On("GetByID", ctx, int64(5)).
		Return(&domain.Review{ID: 5, BusinessID: 1, UserID: 10, Rating: 1}, nil)
	reviews.On("SetHidden", ctx, int64(5), true).Return(nil)
	reviews.On("GetAllVisibleByBusiness", ctx, int64(1)).
		Return(reviewsWithRatings(5, 5), nil)
	businesses.On("UpdateRatingSummary", ctx, int64(1), domain.RatingSummary{
		Average:     5,
		ReviewCount: 2,
		Counts:      domain.RatingCounts{1: 0, 2: 0, 3: 0, 4: 0, 5: 2},
	}).Return(nil)

	err := svc.SetHidden(ctx, 5, true)

	assert.NoError(t, err)
	businesses.AssertExpectations(t)
}

func TestService_MarkHelpful_Duplicate(t *testing.T) {
	svc, reviews, _, _ := newTestService()
	ctx := context.Background()

	reviews.On("AddHelpfulVote", ctx, int64(5), int64(10)).
		Return(0, gorm.ErrDuplicatedKey)

	count, err := svc.MarkHelpful(ctx, 5, 10)

	assert.Zero(t, count)
	assert.ErrorIs(t, err, ErrConflict)
}
