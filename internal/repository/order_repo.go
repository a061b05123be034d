package repository

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/domain"

	"gorm.io/gorm"
)

// ErrStatusConflict is returned when a conditional status update finds
// the order no longer in the expected pre-state (a concurrent actor
// advanced or cancelled it first).
var ErrStatusConflict = errors.New("order status conflict")

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order, its items and the initial status history
// entry in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		entry := domain.OrderStatusEntry{
			OrderID:   o.ID,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		o.StatusHistory = append(o.StatusHistory, entry)
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_entries.id ASC")
		}).
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) GetByBusiness(ctx context.Context, businessID int64, activeOnly bool, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := r.db.WithContext(ctx).
		Preload("Items").
		Where("business_id = ?", businessID)
	if activeOnly {
		q = q.Where("status NOT IN ?", []domain.OrderStatus{domain.OrderDelivered, domain.OrderCancelled})
	}

	var orders []domain.Order
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, err
}

// HasDeliveredOrder reports whether the customer has at least one
// delivered order from the business. Gate for writing a review.
func (r *OrderRepository) HasDeliveredOrder(ctx context.Context, customerID, businessID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("customer_id = ? AND business_id = ? AND status = ?", customerID, businessID, domain.OrderDelivered).
		Count(&count).Error
	return count > 0, err
}

// TransitionStatus moves the order from the expected pre-state to the
// next status and appends the matching history entry, atomically. The
// WHERE clause on the current status is the guard against concurrent
// advancement: if another request won the race, RowsAffected is zero
// and ErrStatusConflict comes back instead of a double transition.
func (r *OrderRepository) TransitionStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) (*domain.OrderStatusEntry, error) {
	now := time.Now().UTC()
	entry := &domain.OrderStatusEntry{
		OrderID:   orderID,
		Status:    to,
		CreatedAt: now,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Order{}).
			Where("id = ? AND status = ?", orderID, from).
			Updates(map[string]any{
				"status":     to,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Cancel is TransitionStatus for the cancellation branch, recording
// the reason alongside.
func (r *OrderRepository) Cancel(ctx context.Context, orderID int64, from domain.OrderStatus, reason string) (*domain.OrderStatusEntry, error) {
	now := time.Now().UTC()
	entry := &domain.OrderStatusEntry{
		OrderID:   orderID,
		Status:    domain.OrderCancelled,
		CreatedAt: now,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Order{}).
			Where("id = ? AND status = ?", orderID, from).
			Updates(map[string]any{
				"status":        domain.OrderCancelled,
				"cancel_reason": reason,
				"updated_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *OrderRepository) SetETA(ctx context.Context, orderID int64, eta time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"eta":        eta,
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
