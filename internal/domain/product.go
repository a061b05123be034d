package domain

import "time"

type Product struct {
	ID          int64      `json:"id"`
	BusinessID  int64      `json:"business_id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price" validate:"required,gte=0"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsAvailable bool       `json:"is_available"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}
