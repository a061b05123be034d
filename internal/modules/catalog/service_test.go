package catalog

import (
	"context"
	"testing"

	"marketplace/internal/domain"
	"marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockBusinessRepo struct {
	mock.Mock
}

func (m *mockBusinessRepo) GetAll(ctx context.Context, f repository.BusinessFilters) ([]domain.Business, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Business), args.Get(1).(int64), args.Error(2)
}

func (m *mockBusinessRepo) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *mockBusinessRepo) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Business, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *mockBusinessRepo) Create(ctx context.Context, b *domain.Business) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 1
	}
	return args.Error(0)
}

func (m *mockBusinessRepo) Update(ctx context.Context, b *domain.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) GetByBusiness(ctx context.Context, businessID int64, onlyAvailable bool, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, businessID, onlyAvailable, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func ownedBakery() *domain.Business {
	return &domain.Business{ID: 1, OwnerID: 20, Name: "Corner Bakery", Status: domain.BusinessApproved}
}

func TestService_CreateBusiness_StartsPending(t *testing.T) {
	businesses := new(mockBusinessRepo)
	svc := NewService(businesses, new(mockProductRepo))
	ctx := context.Background()

	businesses.On("GetByOwnerID", ctx, int64(20)).Return(nil, gorm.ErrRecordNotFound)
	businesses.On("Create", ctx, mock.AnythingOfType("*domain.Business")).Return(nil)

	b, err := svc.CreateBusiness(ctx, 20, "business_owner", CreateBusinessRequest{
		Name: "Corner Bakery", Category: "bakery", Address: "12 Hill St", City: "Almaty",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BusinessPending, b.Status)
	assert.Equal(t, int64(20), b.OwnerID)
	assert.Equal(t, 0, b.ReviewCount)
}

func TestService_CreateBusiness_CustomerForbidden(t *testing.T) {
	svc := NewService(new(mockBusinessRepo), new(mockProductRepo))

	_, err := svc.CreateBusiness(context.Background(), 10, "customer", CreateBusinessRequest{Name: "X"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_CreateBusiness_OnePerOwner(t *testing.T) {
	businesses := new(mockBusinessRepo)
	svc := NewService(businesses, new(mockProductRepo))
	ctx := context.Background()

	businesses.On("GetByOwnerID", ctx, int64(20)).Return(ownedBakery(), nil)

	_, err := svc.CreateBusiness(ctx, 20, "business_owner", CreateBusinessRequest{Name: "Second"})

	assert.ErrorIs(t, err, ErrBusinessAlreadyOwned)
	businesses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_UpdateBusiness_OwnerOnly(t *testing.T) {
	businesses := new(mockBusinessRepo)
	svc := NewService(businesses, new(mockProductRepo))
	ctx := context.Background()

	businesses.On("GetByID", ctx, int64(1)).Return(ownedBakery(), nil)

	_, err := svc.UpdateBusiness(ctx, 99, 1, UpdateBusinessRequest{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_GetBusiness_PendingHiddenFromPublic(t *testing.T) {
	businesses := new(mockBusinessRepo)
	svc := NewService(businesses, new(mockProductRepo))
	ctx := context.Background()

	b := ownedBakery()
	b.Status = domain.BusinessPending
	businesses.On("GetByID", ctx, int64(1)).Return(b, nil)

	_, err := svc.GetBusiness(ctx, 1, 10, "customer")
	assert.ErrorIs(t, err, ErrNotFound)

	// the owner still sees it
	got, err := svc.GetBusiness(ctx, 1, 20, "business_owner")
	assert.NoError(t, err)
	assert.Equal(t, domain.BusinessPending, got.Status)

	// so does an admin
	got, err = svc.GetBusiness(ctx, 1, 3, "admin")
	assert.NoError(t, err)
	assert.NotNil(t, got)
}

func TestService_UpdateProduct_ChecksOwnershipThroughBusiness(t *testing.T) {
	businesses := new(mockBusinessRepo)
	products := new(mockProductRepo)
	svc := NewService(businesses, products)
	ctx := context.Background()

	products.On("GetByID", ctx, int64(7)).Return(&domain.Product{ID: 7, BusinessID: 1, Price: 4.5}, nil)
	businesses.On("GetByID", ctx, int64(1)).Return(ownedBakery(), nil)
	products.On("Update", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	price := 5.0
	p, err := svc.UpdateProduct(ctx, 20, 7, UpdateProductRequest{Price: &price})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, p.Price)

	// a different owner is rejected before any write
	_, err = svc.UpdateProduct(ctx, 99, 7, UpdateProductRequest{Price: &price})
	assert.ErrorIs(t, err, ErrForbidden)
	products.AssertNumberOfCalls(t, "Update", 1)
}

func TestService_UpdateProduct_NegativePrice(t *testing.T) {
	businesses := new(mockBusinessRepo)
	products := new(mockProductRepo)
	svc := NewService(businesses, products)
	ctx := context.Background()

	products.On("GetByID", ctx, int64(7)).Return(&domain.Product{ID: 7, BusinessID: 1, Price: 4.5}, nil)
	businesses.On("GetByID", ctx, int64(1)).Return(ownedBakery(), nil)

	bad := -1.0
	_, err := svc.UpdateProduct(ctx, 20, 7, UpdateProductRequest{Price: &bad})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ListBusinesses_ClampsLimit(t *testing.T) {
	businesses := new(mockBusinessRepo)
	svc := NewService(businesses, new(mockProductRepo))
	ctx := context.Background()

	businesses.On("GetAll", ctx, repository.BusinessFilters{Limit: 20}).
		Return([]domain.Business{}, int64(0), nil)

	_, _, err := svc.ListBusinesses(ctx, repository.BusinessFilters{Limit: 500})

	assert.NoError(t, err)
	businesses.AssertExpectations(t)
}
