package repository

import (
	"context"
	"time"

	"marketplace/internal/domain"

	"gorm.io/gorm"
)

type BusinessFilters struct {
	City      string
	Category  string
	MinRating float64
	Limit     int
	Offset    int
}

type BusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// GetAll returns approved businesses with optional filters
func (r *BusinessRepository) GetAll(
	ctx context.Context,
	f BusinessFilters,
) ([]domain.Business, int64, error) {

	var businesses []domain.Business
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("deleted_at IS NULL").
		Where("status = ?", domain.BusinessApproved)

	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	if f.MinRating > 0 {
		q = q.Where("rating >= ?", f.MinRating)
	}

	q.Count(&total)

	err := q.
		Order("rating DESC, review_count DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&businesses).Error

	return businesses, total, err
}

// GetByID fetches a business by its ID
func (r *BusinessRepository) GetByID(
	ctx context.Context,
	id int64,
) (*domain.Business, error) {

	var business domain.Business

	err := r.db.WithContext(ctx).
		Where("businesses.id = ? AND deleted_at IS NULL", id).
		First(&business).Error

	if err != nil {
		return nil, err
	}

	return &business, nil
}

func (r *BusinessRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Business, error) {
	var business domain.Business
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *BusinessRepository) GetPending(ctx context.Context, limit, offset int) ([]domain.Business, int64, error) {
	var businesses []domain.Business
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("deleted_at IS NULL AND status = ?", domain.BusinessPending)

	q.Count(&total)

	err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&businesses).Error
	return businesses, total, err
}

// Create a new business
func (r *BusinessRepository) Create(ctx context.Context, business *domain.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

// Update an existing business
func (r *BusinessRepository) Update(ctx context.Context, business *domain.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}

func (r *BusinessRepository) UpdateStatus(ctx context.Context, id int64, status domain.BusinessStatus, reason string) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"status":          status,
			"rejected_reason": reason,
			"updated_at":      time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRatingSummary overwrites the derived rating fields in a single
// UPDATE so concurrent readers never see a half-written summary.
func (r *BusinessRepository) UpdateRatingSummary(ctx context.Context, id int64, s domain.RatingSummary) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":        s.Average,
			"review_count":  s.ReviewCount,
			"rating_counts": s.Counts,
			"updated_at":    time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
