package domain

import "time"

type Favorite struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	BusinessID int64     `json:"business_id"`
	CreatedAt  time.Time `json:"created_at"`

	Business *Business `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
}
