package admin

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	businesses BusinessRepository
	users      UserRepository
	reviews    ReviewModerator
	notifs     NotificationSender
}

func NewService(
	businesses BusinessRepository,
	users UserRepository,
	reviews ReviewModerator,
	notifs NotificationSender,
) *Service {
	return &Service{
		businesses: businesses,
		users:      users,
		reviews:    reviews,
		notifs:     notifs,
	}
}

// -------------------- Business moderation --------------------

func (s *Service) GetPendingBusinesses(ctx context.Context, page, limit int) ([]domain.Business, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	return s.businesses.GetPending(ctx, limit, offset)
}

// ApproveBusiness makes a pending business visible to customers.
func (s *Service) ApproveBusiness(ctx context.Context, businessID int64) (*domain.Business, error) {
	b, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status != domain.BusinessPending {
		return nil, ErrAlreadyDecided
	}

	if err := s.businesses.UpdateStatus(ctx, businessID, domain.BusinessApproved, ""); err != nil {
		return nil, err
	}
	b.Status = domain.BusinessApproved

	if s.notifs != nil {
		_ = s.notifs.NotifyBusinessApproved(ctx, b.OwnerID, b.ID)
	}

	return b, nil
}

func (s *Service) RejectBusiness(ctx context.Context, businessID int64, reason string) (*domain.Business, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	b, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status != domain.BusinessPending {
		return nil, ErrAlreadyDecided
	}

	if err := s.businesses.UpdateStatus(ctx, businessID, domain.BusinessRejected, reason); err != nil {
		return nil, err
	}
	b.Status = domain.BusinessRejected
	b.RejectedReason = reason

	if s.notifs != nil {
		_ = s.notifs.NotifyBusinessRejected(ctx, b.OwnerID, b.ID, reason)
	}

	return b, nil
}

// -------------------- Review moderation --------------------

func (s *Service) SetReviewHidden(ctx context.Context, reviewID int64, hidden bool) error {
	return s.reviews.SetHidden(ctx, reviewID, hidden)
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]domain.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, total, nil
}
