package notification

import (
	"context"
	"fmt"

	"marketplace/internal/domain"
)

// Service persists in-app notifications. The order, review, admin and
// chat modules call the Notify* methods; delivery to devices is out of
// scope, clients poll the list endpoint.
type Service struct {
	repo NotificationRepository
}

func NewService(repo NotificationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
		Data:    data,
	}
	return s.repo.Create(ctx, n)
}

// GetUserNotifications returns the newest notifications plus the
// unread count, computed per request.
func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *Service) NotifyOrderPlaced(ctx context.Context, ownerUserID, orderID, businessID int64) error {
	return s.Create(
		ctx,
		ownerUserID,
		domain.NotifOrderPlaced,
		"New order",
		"A new order is waiting for preparation",
		map[string]any{
			"order_id":    orderID,
			"business_id": businessID,
		},
	)
}

func (s *Service) NotifyOrderAdvanced(ctx context.Context, customerUserID, orderID int64, status domain.OrderStatus) error {
	return s.Create(
		ctx,
		customerUserID,
		domain.NotifOrderAdvanced,
		"Order update",
		fmt.Sprintf("Your order is now %s", status),
		map[string]any{
			"order_id": orderID,
			"status":   string(status),
		},
	)
}

func (s *Service) NotifyOrderCancelled(ctx context.Context, userID, orderID int64, reason string) error {
	msg := "The order was cancelled"
	if reason != "" {
		msg = msg + ". Reason: " + reason
	}
	return s.Create(
		ctx,
		userID,
		domain.NotifOrderCancelled,
		"Order cancelled",
		msg,
		map[string]any{
			"order_id": orderID,
		},
	)
}

func (s *Service) NotifyNewReview(ctx context.Context, ownerUserID, businessID, reviewID int64, rating float64) error {
	return s.Create(
		ctx,
		ownerUserID,
		domain.NotifNewReview,
		"New review",
		fmt.Sprintf("Your business received a %.1f-star review", rating),
		map[string]any{
			"business_id": businessID,
			"review_id":   reviewID,
		},
	)
}

func (s *Service) NotifyBusinessApproved(ctx context.Context, ownerUserID, businessID int64) error {
	return s.Create(
		ctx,
		ownerUserID,
		domain.NotifBusinessStatus,
		"Business approved",
		"Your business is now visible to customers",
		map[string]any{
			"business_id": businessID,
			"status":      string(domain.BusinessApproved),
		},
	)
}

func (s *Service) NotifyBusinessRejected(ctx context.Context, ownerUserID, businessID int64, reason string) error {
	msg := "Your business listing was rejected"
	if reason != "" {
		msg = msg + ". Reason: " + reason
	}
	return s.Create(
		ctx,
		ownerUserID,
		domain.NotifBusinessStatus,
		"Business rejected",
		msg,
		map[string]any{
			"business_id": businessID,
			"status":      string(domain.BusinessRejected),
		},
	)
}

func (s *Service) NotifyNewChatMessage(ctx context.Context, userID, conversationID, messageID int64) error {
	return s.Create(
		ctx,
		userID,
		domain.NotifNewChatMessage,
		"New message",
		"You have a new chat message",
		map[string]any{
			"conversation_id": conversationID,
			"message_id":      messageID,
		},
	)
}
