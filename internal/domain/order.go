package domain

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderOnTheWay       OrderStatus = "on_the_way"
	OrderDelivered      OrderStatus = "delivered"

	// Cancellation is a separate branch, not part of the delivery
	// progression. Only reachable from preparing.
	OrderCancelled OrderStatus = "cancelled"
)

// ErrUnknownOrderStatus marks a status value outside the known set.
// That is a data-integrity problem, not a normal terminal state.
var ErrUnknownOrderStatus = errors.New("unknown order status")

// orderProgression is the fixed delivery sequence. Delivered is
// terminal; there are no reverse transitions.
var orderProgression = [...]OrderStatus{
	OrderPreparing,
	OrderOutForDelivery,
	OrderOnTheWay,
	OrderDelivered,
}

// NextStatus returns the status following s in the delivery
// progression. ok is false when s is terminal (delivered), which is a
// normal outcome, not an error. A status outside the progression
// (including cancelled) yields ErrUnknownOrderStatus.
func NextStatus(s OrderStatus) (next OrderStatus, ok bool, err error) {
	for i, cur := range orderProgression {
		if cur != s {
			continue
		}
		if i == len(orderProgression)-1 {
			return "", false, nil
		}
		return orderProgression[i+1], true, nil
	}
	return "", false, ErrUnknownOrderStatus
}

// IsTerminalOrderStatus reports whether no transition leaves s.
func IsTerminalOrderStatus(s OrderStatus) bool {
	return s == OrderDelivered || s == OrderCancelled
}

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"-"`
	ProductID int64   `json:"product_id" validate:"required"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderStatusEntry is one row of the append-only audit trail. Entries
// are never updated, removed, or reordered.
type OrderStatusEntry struct {
	ID        int64       `json:"id"`
	OrderID   int64       `json:"-"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"timestamp"`
}

type Order struct {
	ID              int64       `json:"id"`
	Reference       string      `json:"reference"`
	CustomerID      int64       `json:"customer_id"`
	BusinessID      int64       `json:"business_id"`
	Status          OrderStatus `json:"status"`
	TotalPrice      float64     `json:"total_price"`
	DeliveryAddress string      `json:"delivery_address"`
	DeliveryLat     float64     `json:"delivery_lat,omitempty"`
	DeliveryLng     float64     `json:"delivery_lng,omitempty"`
	ETA             *time.Time  `json:"estimated_arrival,omitempty"`
	CancelReason    string      `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	Items         []OrderItem        `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusEntry `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
}
