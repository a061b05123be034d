package chat

import "marketplace/internal/domain"

type StartConversationRequest struct {
	BusinessID     int64  `json:"business_id" binding:"required"`
	InitialMessage string `json:"initial_message"`
}

type SendMessageRequest struct {
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"image_url"`
}

// WSClientMessage is what a connected client sends over the socket
type WSClientMessage struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id,omitempty"`
	Content        string `json:"content,omitempty"`
}

// WSEvent is what the server pushes to connected clients
type WSEvent struct {
	Type           string              `json:"type"`
	ConversationID int64               `json:"conversation_id,omitempty"`
	Message        *domain.ChatMessage `json:"message,omitempty"`
	Error          *WSError            `json:"error,omitempty"`
}

type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewMessageEvent(conversationID int64, msg *domain.ChatMessage) WSEvent {
	return WSEvent{Type: "message", ConversationID: conversationID, Message: msg}
}

func NewErrorEvent(code, message string) WSEvent {
	return WSEvent{Type: "error", Error: &WSError{Code: code, Message: message}}
}

func NewPongEvent() WSEvent {
	return WSEvent{Type: "pong"}
}
