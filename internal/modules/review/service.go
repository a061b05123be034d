package review

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"marketplace/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	reviews    ReviewRepository
	orders     OrderGate
	businesses BusinessGate
	notifs     NotificationSender
}

func NewService(reviews ReviewRepository, orders OrderGate, businesses BusinessGate, notifs NotificationSender) *Service {
	return &Service{reviews: reviews, orders: orders, businesses: businesses, notifs: notifs}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if userID <= 0 || req.BusinessID <= 0 || !validRating(req.Rating) {
		return nil, ErrInvalidRequest
	}

	ok, err := s.orders.HasDeliveredOrder(ctx, userID, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReviewNotAllowed
	}

	// One review per user per business. The unique index is the real
	// guarantee; this lookup just gives a clean error on the fast path.
	exists, err := s.reviews.ExistsByUserAndBusiness(ctx, userID, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	rv := &domain.Review{
		BusinessID: req.BusinessID,
		UserID:     userID,
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if err := s.Recalculate(ctx, req.BusinessID); err != nil {
		// The review row stays; summaries are advisory data and the
		// next successful recompute heals them.
		return rv, ErrAggregationFailed
	}

	if s.notifs != nil {
		if b, err := s.businesses.GetByID(ctx, req.BusinessID); err == nil {
			_ = s.notifs.NotifyNewReview(ctx, b.OwnerID, b.ID, rv.ID, rv.Rating)
		}
	}

	return rv, nil
}

func (s *Service) Update(ctx context.Context, reviewID, userID int64, req UpdateReviewRequest) (*domain.Review, error) {
	if reviewID <= 0 || userID <= 0 || !validRating(req.Rating) {
		return nil, ErrInvalidRequest
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rv.UserID != userID {
		return nil, ErrForbidden
	}

	ratingChanged := rv.Rating != req.Rating

	updated, err := s.reviews.Update(ctx, reviewID, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ratingChanged {
		if err := s.Recalculate(ctx, rv.BusinessID); err != nil {
			return updated, ErrAggregationFailed
		}
	}

	return updated, nil
}

// Delete removes a review. Admins may delete any review, authors only
// their own. The business summary is recomputed afterwards.
func (s *Service) Delete(ctx context.Context, reviewID, userID int64, isAdmin bool) error {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !isAdmin && rv.UserID != userID {
		return ErrForbidden
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.Recalculate(ctx, rv.BusinessID); err != nil {
		return ErrAggregationFailed
	}
	return nil
}

// SetHidden hides or unhides a review (admin moderation). Hidden
// reviews leave the visible set, so the summary is recomputed.
func (s *Service) SetHidden(ctx context.Context, reviewID int64, hidden bool) error {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.reviews.SetHidden(ctx, reviewID, hidden); err != nil {
		return err
	}

	if err := s.Recalculate(ctx, rv.BusinessID); err != nil {
		return ErrAggregationFailed
	}
	return nil
}

func (s *Service) GetByBusiness(ctx context.Context, businessID int64, limit, offset int) ([]domain.Review, error) {
	if businessID <= 0 {
		return nil, ErrInvalidRequest
	}
	return s.reviews.GetByBusiness(ctx, businessID, limit, offset)
}

func (s *Service) MarkHelpful(ctx context.Context, reviewID, userID int64) (int, error) {
	if reviewID <= 0 || userID <= 0 {
		return 0, ErrInvalidRequest
	}

	count, err := s.reviews.AddHelpfulVote(ctx, reviewID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	return count, nil
}

// Recalculate rebuilds the business rating summary from the full
// visible review set and writes it in a single update. One retry,
// summaries are non-critical and eventually consistent.
func (s *Service) Recalculate(ctx context.Context, businessID int64) error {
	err := s.recalculateOnce(ctx, businessID)
	if err == nil {
		return nil
	}

	log.Printf("rating_aggregation_retry business_id=%d error=%q", businessID, err)
	if err = s.recalculateOnce(ctx, businessID); err != nil {
		log.Printf("rating_aggregation_failed business_id=%d error=%q", businessID, err)
		return err
	}
	return nil
}

func (s *Service) recalculateOnce(ctx context.Context, businessID int64) error {
	reviews, err := s.reviews.GetAllVisibleByBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	return s.businesses.UpdateRatingSummary(ctx, businessID, Summarize(reviews))
}

// validRating accepts whole and half stars between 1 and 5.
func validRating(r float64) bool {
	if r < 1 || r > 5 {
		return false
	}
	doubled := r * 2
	return doubled == math.Trunc(doubled)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite driver reports constraint failures as plain strings.
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") || strings.Contains(s, "23505")
}
