package domain

import "time"

type NotificationType string

const (
	NotifOrderPlaced    NotificationType = "order_placed"
	NotifOrderAdvanced  NotificationType = "order_advanced"
	NotifOrderCancelled NotificationType = "order_cancelled"
	NotifNewReview      NotificationType = "new_review"
	NotifBusinessStatus NotificationType = "business_status"
	NotifNewChatMessage NotificationType = "new_message"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data,omitempty" gorm:"serializer:json;type:json"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
