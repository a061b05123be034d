package catalog

import (
	"context"
	"errors"

	"marketplace/internal/domain"
	"marketplace/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	businesses BusinessRepository
	products   ProductRepository
}

func NewService(businesses BusinessRepository, products ProductRepository) *Service {
	return &Service{businesses: businesses, products: products}
}

/* ---------- PUBLIC BROWSE ---------- */

func (s *Service) ListBusinesses(ctx context.Context, f repository.BusinessFilters) ([]domain.Business, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.businesses.GetAll(ctx, f)
}

// GetBusiness returns one approved business for public viewing. Owners
// and admins see their business regardless of moderation status.
func (s *Service) GetBusiness(ctx context.Context, id, viewerID int64, viewerRole string) (*domain.Business, error) {
	b, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.Status != domain.BusinessApproved {
		if viewerRole == string(domain.RoleAdmin) || b.OwnerID == viewerID {
			return b, nil
		}
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) ListProducts(ctx context.Context, businessID int64, limit, offset int) ([]domain.Product, error) {
	if _, err := s.businesses.GetByID(ctx, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.products.GetByBusiness(ctx, businessID, true, limit, offset)
}

/* ---------- OWNER: BUSINESS ---------- */

// CreateBusiness registers a business profile for the owner. It starts
// in the pending state and stays invisible until an admin approves it.
// One business per owner account.
func (s *Service) CreateBusiness(ctx context.Context, ownerID int64, ownerRole string, req CreateBusinessRequest) (*domain.Business, error) {
	if ownerRole != string(domain.RoleBusinessOwner) {
		return nil, ErrForbidden
	}

	if _, err := s.businesses.GetByOwnerID(ctx, ownerID); err == nil {
		return nil, ErrBusinessAlreadyOwned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	b := &domain.Business{
		OwnerID:      ownerID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Address:      req.Address,
		City:         req.City,
		Phone:        req.Phone,
		LogoURL:      req.LogoURL,
		Status:       domain.BusinessPending,
		RatingCounts: domain.RatingCounts{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if err := s.businesses.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) UpdateBusiness(ctx context.Context, ownerID, businessID int64, req UpdateBusinessRequest) (*domain.Business, error) {
	b, err := s.ownedBusiness(ctx, ownerID, businessID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.City != nil {
		b.City = *req.City
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.LogoURL != nil {
		b.LogoURL = *req.LogoURL
	}

	if err := s.businesses.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetMyBusiness(ctx context.Context, ownerID int64) (*domain.Business, error) {
	b, err := s.businesses.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

/* ---------- OWNER: PRODUCTS ---------- */

func (s *Service) CreateProduct(ctx context.Context, ownerID, businessID int64, req CreateProductRequest) (*domain.Product, error) {
	if _, err := s.ownedBusiness(ctx, ownerID, businessID); err != nil {
		return nil, err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	p := &domain.Product{
		BusinessID:  businessID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, ownerID, productID int64, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrValidation
		}
		p.Price = *req.Price
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, ownerID, productID int64) error {
	if _, err := s.ownedProduct(ctx, ownerID, productID); err != nil {
		return err
	}
	return s.products.SoftDelete(ctx, productID)
}

func (s *Service) ownedBusiness(ctx context.Context, ownerID, businessID int64) (*domain.Business, error) {
	b, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ownedProduct(ctx context.Context, ownerID, productID int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.ownedBusiness(ctx, ownerID, p.BusinessID); err != nil {
		return nil, err
	}
	return p, nil
}
