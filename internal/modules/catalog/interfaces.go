package catalog

import (
	"context"

	"marketplace/internal/domain"
	"marketplace/internal/repository"
)

type BusinessRepository interface {
	GetAll(ctx context.Context, f repository.BusinessFilters) ([]domain.Business, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Business, error)
	Create(ctx context.Context, b *domain.Business) error
	Update(ctx context.Context, b *domain.Business) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByBusiness(ctx context.Context, businessID int64, onlyAvailable bool, limit, offset int) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
