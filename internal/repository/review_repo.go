package repository

import (
	"context"
	"time"

	"marketplace/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	BusinessID   int64     `gorm:"column:business_id;uniqueIndex:idx_one_review_per_user"`
	UserID       int64     `gorm:"column:user_id;uniqueIndex:idx_one_review_per_user"`
	OrderID      *int64    `gorm:"column:order_id"`
	Rating       float64   `gorm:"column:rating"`
	Comment      *string   `gorm:"column:comment"`
	HelpfulCount int       `gorm:"column:helpful_count"`
	IsHidden     bool      `gorm:"column:is_hidden"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) domain.Review {
	comment := ""
	if m.Comment != nil {
		comment = *m.Comment
	}
	return domain.Review{
		ID:           m.ID,
		BusinessID:   m.BusinessID,
		UserID:       m.UserID,
		OrderID:      m.OrderID,
		Rating:       m.Rating,
		Comment:      comment,
		HelpfulCount: m.HelpfulCount,
		IsHidden:     m.IsHidden,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toReviewModel(rv *domain.Review) reviewModel {
	var comment *string
	if rv.Comment != "" {
		v := rv.Comment
		comment = &v
	}
	return reviewModel{
		ID:           rv.ID,
		BusinessID:   rv.BusinessID,
		UserID:       rv.UserID,
		OrderID:      rv.OrderID,
		Rating:       rv.Rating,
		Comment:      comment,
		HelpfulCount: rv.HelpfulCount,
		IsHidden:     rv.IsHidden,
		CreatedAt:    rv.CreatedAt,
		UpdatedAt:    rv.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := toReviewModel(rv)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rv = toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	d := toDomainReview(m)
	return &d, nil
}

func (r *ReviewRepository) GetByBusiness(ctx context.Context, businessID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []reviewModel
	tx := r.db.WithContext(ctx).
		Where("business_id = ? AND is_hidden = false", businessID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReview(m))
	}
	return out, nil
}

// GetAllVisibleByBusiness returns every non-hidden review of a
// business, unpaginated. Input to the rating aggregator.
func (r *ReviewRepository) GetAllVisibleByBusiness(ctx context.Context, businessID int64) ([]domain.Review, error) {
	var rows []reviewModel
	tx := r.db.WithContext(ctx).
		Where("business_id = ? AND is_hidden = false", businessID).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReview(m))
	}
	return out, nil
}

func (r *ReviewRepository) ExistsByUserAndBusiness(ctx context.Context, userID, businessID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) Update(ctx context.Context, id int64, rating float64, comment string) (*domain.Review, error) {
	tx := r.db.WithContext(ctx).
		Table("reviews").
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":     rating,
			"comment":    comment,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&reviewModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReviewRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	tx := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_hidden":  hidden,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type helpfulVoteModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ReviewID  int64     `gorm:"column:review_id;uniqueIndex:idx_one_vote_per_user"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_one_vote_per_user"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (helpfulVoteModel) TableName() string { return "review_helpful_votes" }

// AddHelpfulVote records a vote and bumps the denormalized counter in
// one transaction. The unique index keeps votes one-per-user.
func (r *ReviewRepository) AddHelpfulVote(ctx context.Context, reviewID, userID int64) (int, error) {
	var updated reviewModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&helpfulVoteModel{ReviewID: reviewID, UserID: userID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&reviewModel{}).
			Where("id = ?", reviewID).
			Update("helpful_count", gorm.Expr("helpful_count + 1")).Error; err != nil {
			return err
		}
		return tx.First(&updated, reviewID).Error
	})
	if err != nil {
		return 0, err
	}
	return updated.HelpfulCount, nil
}
