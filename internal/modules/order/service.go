package order

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	orders     OrderRepository
	products   ProductCatalog
	businesses BusinessGate
	notifs     NotificationSender
}

func NewService(orders OrderRepository, products ProductCatalog, businesses BusinessGate, notifs NotificationSender) *Service {
	return &Service{
		orders:     orders,
		products:   products,
		businesses: businesses,
		notifs:     notifs,
	}
}

// Place creates an order in the preparing state. Prices are resolved
// server-side at placement; the client sends product IDs and
// quantities only.
func (s *Service) Place(ctx context.Context, customerID int64, req PlaceOrderRequest) (*domain.Order, error) {
	if customerID <= 0 || req.BusinessID <= 0 || len(req.Items) == 0 || req.DeliveryAddress == "" {
		return nil, ErrValidation
	}

	b, err := s.businesses.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status != domain.BusinessApproved {
		return nil, ErrBusinessNotAvailable
	}

	ids := make([]int64, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return nil, ErrValidation
		}
		ids = append(ids, it.ProductID)
	}

	available, err := s.products.GetPricesByIDs(ctx, req.BusinessID, ids)
	if err != nil {
		return nil, err
	}

	var total float64
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		p, ok := available[it.ProductID]
		if !ok {
			return nil, ErrProductUnavailable
		}
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
		total += p.Price * float64(it.Quantity)
	}
	total = math.Round(total*100) / 100

	now := time.Now().UTC()
	o := &domain.Order{
		Reference:       uuid.NewString(),
		CustomerID:      customerID,
		BusinessID:      req.BusinessID,
		Status:          domain.OrderPreparing,
		TotalPrice:      total,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryLat:     req.DeliveryLat,
		DeliveryLng:     req.DeliveryLng,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           items,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyOrderPlaced(ctx, b.OwnerID, o.ID, b.ID)
	}

	return o, nil
}

// Advance moves the order one step along the fixed delivery
// progression. It is triggered by an explicit event from the business
// side (courier check-in, dashboard confirmation), never a timer.
//
// Calling it on a delivered order is a safe no-op: the order comes
// back unchanged and the history does not grow. A status outside the
// progression is a data-integrity error; the order is left untouched.
func (s *Service) Advance(ctx context.Context, orderID, actorUserID int64, actorRole string) (*domain.Order, error) {
	o, err := s.authorizeBusinessActor(ctx, orderID, actorUserID, actorRole)
	if err != nil {
		return nil, err
	}

	if o.Status == domain.OrderCancelled {
		return nil, ErrInvalidStatusTransition
	}

	next, ok, err := domain.NextStatus(o.Status)
	if err != nil {
		log.Printf("order_status_integrity order_id=%d status=%q", o.ID, o.Status)
		return nil, err
	}
	if !ok {
		// Terminal state: idempotent no-op.
		return o, nil
	}

	entry, err := s.orders.TransitionStatus(ctx, o.ID, o.Status, next)
	if err != nil {
		if isStatusConflict(err) {
			return nil, ErrStatusConflict
		}
		return nil, err
	}

	o.Status = next
	o.UpdatedAt = entry.CreatedAt
	o.StatusHistory = append(o.StatusHistory, *entry)

	if s.notifs != nil {
		_ = s.notifs.NotifyOrderAdvanced(ctx, o.CustomerID, o.ID, next)
	}

	return o, nil
}

// Cancel aborts an order, allowed only while it is still preparing.
// The customer who placed it and the business owner may both cancel.
func (s *Service) Cancel(ctx context.Context, orderID, actorUserID int64, actorRole, reason string) (*domain.Order, error) {
	if reason == "" {
		return nil, ErrValidation
	}

	o, err := s.getAuthorized(ctx, orderID, actorUserID, actorRole)
	if err != nil {
		return nil, err
	}

	if o.Status != domain.OrderPreparing {
		return nil, ErrInvalidStatusTransition
	}

	entry, err := s.orders.Cancel(ctx, o.ID, domain.OrderPreparing, reason)
	if err != nil {
		if isStatusConflict(err) {
			return nil, ErrStatusConflict
		}
		return nil, err
	}

	o.Status = domain.OrderCancelled
	o.CancelReason = reason
	o.UpdatedAt = entry.CreatedAt
	o.StatusHistory = append(o.StatusHistory, *entry)

	if s.notifs != nil {
		counterparty := o.CustomerID
		if actorUserID == o.CustomerID {
			if b, err := s.businesses.GetByID(ctx, o.BusinessID); err == nil {
				counterparty = b.OwnerID
			}
		}
		_ = s.notifs.NotifyOrderCancelled(ctx, counterparty, o.ID, reason)
	}

	return o, nil
}

// GetByID returns the order with items and full status history, for
// the customer, the business owner, or an admin.
func (s *Service) GetByID(ctx context.Context, orderID, actorUserID int64, actorRole string) (*domain.Order, error) {
	return s.getAuthorized(ctx, orderID, actorUserID, actorRole)
}

func (s *Service) GetMyOrders(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error) {
	if customerID <= 0 {
		return nil, ErrValidation
	}
	return s.orders.GetByCustomer(ctx, customerID, limit, offset)
}

func (s *Service) GetBusinessOrders(ctx context.Context, businessID, actorUserID int64, activeOnly bool, limit, offset int) ([]domain.Order, error) {
	b, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.OwnerID != actorUserID {
		return nil, ErrForbidden
	}
	return s.orders.GetByBusiness(ctx, businessID, activeOnly, limit, offset)
}

func (s *Service) SetETA(ctx context.Context, orderID, actorUserID int64, actorRole string, eta time.Time) (*domain.Order, error) {
	o, err := s.authorizeBusinessActor(ctx, orderID, actorUserID, actorRole)
	if err != nil {
		return nil, err
	}

	if domain.IsTerminalOrderStatus(o.Status) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.orders.SetETA(ctx, o.ID, eta); err != nil {
		return nil, err
	}
	o.ETA = &eta
	return o, nil
}

// authorizeBusinessActor loads the order and verifies the actor runs
// the business that received it (admins pass as well).
func (s *Service) authorizeBusinessActor(ctx context.Context, orderID, actorUserID int64, actorRole string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actorRole == string(domain.RoleAdmin) {
		return o, nil
	}
	if actorRole != string(domain.RoleBusinessOwner) {
		return nil, ErrForbidden
	}

	b, err := s.businesses.GetByID(ctx, o.BusinessID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != actorUserID {
		return nil, ErrForbidden
	}
	return o, nil
}

// getAuthorized loads the order for any party to it: the customer,
// the business owner, or an admin.
func (s *Service) getAuthorized(ctx context.Context, orderID, actorUserID int64, actorRole string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actorRole == string(domain.RoleAdmin) || o.CustomerID == actorUserID {
		return o, nil
	}

	b, err := s.businesses.GetByID(ctx, o.BusinessID)
	if err == nil && b.OwnerID == actorUserID {
		return o, nil
	}
	return nil, ErrForbidden
}

func isStatusConflict(err error) bool {
	return errors.Is(err, repository.ErrStatusConflict)
}
