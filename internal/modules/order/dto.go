package order

import "time"

type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type PlaceOrderRequest struct {
	BusinessID      int64              `json:"business_id" validate:"required,gt=0"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1"`
	DeliveryAddress string             `json:"delivery_address" validate:"required"`
	DeliveryLat     float64            `json:"delivery_lat,omitempty"`
	DeliveryLng     float64            `json:"delivery_lng,omitempty"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type SetETARequest struct {
	ETA time.Time `json:"estimated_arrival" validate:"required"`
}
