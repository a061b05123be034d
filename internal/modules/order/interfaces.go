package order

import (
	"context"
	"time"

	"marketplace/internal/domain"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error)
	GetByBusiness(ctx context.Context, businessID int64, activeOnly bool, limit, offset int) ([]domain.Order, error)
	TransitionStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) (*domain.OrderStatusEntry, error)
	Cancel(ctx context.Context, orderID int64, from domain.OrderStatus, reason string) (*domain.OrderStatusEntry, error)
	SetETA(ctx context.Context, orderID int64, eta time.Time) error
}

// ProductCatalog resolves products to current prices at placement time
type ProductCatalog interface {
	GetPricesByIDs(ctx context.Context, businessID int64, ids []int64) (map[int64]domain.Product, error)
}

// BusinessGate looks up the business an order targets
type BusinessGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

type NotificationSender interface {
	NotifyOrderPlaced(ctx context.Context, ownerUserID, orderID, businessID int64) error
	NotifyOrderAdvanced(ctx context.Context, customerUserID, orderID int64, status domain.OrderStatus) error
	NotifyOrderCancelled(ctx context.Context, userID, orderID int64, reason string) error
}
