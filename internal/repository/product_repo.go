package repository

import (
	"context"
	"time"

	"marketplace/internal/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByBusiness(ctx context.Context, businessID int64, onlyAvailable bool, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := r.db.WithContext(ctx).
		Where("business_id = ? AND deleted_at IS NULL", businessID)
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}

	var products []domain.Product
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

// GetPricesByIDs resolves current unit prices for a set of available
// products of one business. Missing or unavailable products are simply
// absent from the result; the caller decides whether that is an error.
func (r *ProductRepository) GetPricesByIDs(ctx context.Context, businessID int64, ids []int64) (map[int64]domain.Product, error) {
	var rows []domain.Product
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND id IN ? AND is_available = ? AND deleted_at IS NULL", businessID, ids, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[int64]domain.Product, len(rows))
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now().UTC())
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
