package admin

import (
	"context"

	"marketplace/internal/domain"
)

type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetPending(ctx context.Context, limit, offset int) ([]domain.Business, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BusinessStatus, reason string) error
}

type UserRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
}

// ReviewModerator hides or unhides a review and re-aggregates the
// business rating, since hidden reviews leave the visible set.
type ReviewModerator interface {
	SetHidden(ctx context.Context, reviewID int64, hidden bool) error
}

type NotificationSender interface {
	NotifyBusinessApproved(ctx context.Context, ownerUserID, businessID int64) error
	NotifyBusinessRejected(ctx context.Context, ownerUserID, businessID int64, reason string) error
}
