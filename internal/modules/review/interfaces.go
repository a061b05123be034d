package review

import (
	"context"

	"marketplace/internal/domain"
)

// ReviewRepository is the persistence surface the service needs.
type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	GetByBusiness(ctx context.Context, businessID int64, limit, offset int) ([]domain.Review, error)
	GetAllVisibleByBusiness(ctx context.Context, businessID int64) ([]domain.Review, error)
	ExistsByUserAndBusiness(ctx context.Context, userID, businessID int64) (bool, error)
	Update(ctx context.Context, id int64, rating float64, comment string) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	SetHidden(ctx context.Context, id int64, hidden bool) error
	AddHelpfulVote(ctx context.Context, reviewID, userID int64) (int, error)
}

// OrderGate answers whether a customer has a delivered order from a
// business, which is the precondition for reviewing it.
type OrderGate interface {
	HasDeliveredOrder(ctx context.Context, customerID, businessID int64) (bool, error)
}

// BusinessGate exposes the business record and the single-update write
// path for its rating summary.
type BusinessGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	UpdateRatingSummary(ctx context.Context, id int64, s domain.RatingSummary) error
}

type NotificationSender interface {
	NotifyNewReview(ctx context.Context, ownerUserID, businessID, reviewID int64, rating float64) error
}
