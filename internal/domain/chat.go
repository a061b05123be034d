package domain

import "time"

// Conversation is a direct thread between one customer and one
// business. A pair has at most one conversation.
type Conversation struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	BusinessID int64     `json:"business_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChatMessage struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	ImageURL       string    `json:"image_url,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
