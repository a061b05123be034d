package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/jwt"
	"marketplace/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Mobile clients connect from app schemes, not browser origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwt.Service
}

func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwtService}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/chat")
	{
		g.POST("/conversations", h.StartConversation)
		g.GET("/conversations", h.ListConversations)
		g.GET("/conversations/:id/messages", h.GetMessages)
		g.POST("/conversations/:id/messages", h.SendMessage)
		g.PATCH("/conversations/:id/read", h.MarkAsRead)
	}
}

// RegisterWS mounts the websocket endpoint. Auth is a token query
// parameter because browsers cannot set headers on websocket dials.
func (h *Handler) RegisterWS(engine *gin.Engine) {
	engine.GET("/ws/chat", h.HandleWebSocket)
}

func (h *Handler) StartConversation(c *gin.Context) {
	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	conv, msg, err := h.service.StartConversation(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBusinessNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		case errors.Is(err, ErrOwnBusiness):
			response.Error(c, http.StatusBadRequest, "OWN_BUSINESS", "Cannot message your own business")
		default:
			response.Error(c, http.StatusInternalServerError, "CHAT_FAILED", "Failed to start conversation")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"conversation": conv,
		"message":      msg,
	})
}

func (h *Handler) ListConversations(c *gin.Context) {
	convs, err := h.service.GetUserConversations(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list conversations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conversations": convs})
}

func (h *Handler) GetMessages(c *gin.Context) {
	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || conversationID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	msgs, err := h.service.GetMessages(c.Request.Context(), c.GetInt64("user_id"), conversationID, limit, offset)
	if err != nil {
		h.writeChatError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) SendMessage(c *gin.Context) {
	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || conversationID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	msg, err := h.service.SendMessage(c.Request.Context(), userID, conversationID, req)
	if err != nil {
		h.writeChatError(c, err)
		return
	}

	h.deliver(c.Request.Context(), userID, conversationID, msg)

	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || conversationID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), c.GetInt64("user_id"), conversationID); err != nil {
		h.writeChatError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "read"})
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter is required"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws_upgrade_failed user_id=%d err=%v", userID, err)
		return
	}

	h.hub.Register(userID, conn)
	defer func() {
		h.hub.Unregister(userID)
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	go h.pingLoop(conn)

	h.readLoop(conn, userID)
}

func (h *Handler) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

func (h *Handler) readLoop(conn *websocket.Conn, userID int64) {
	for {
		_, rawMsg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("ws_read_error user_id=%d err=%v", userID, err)
			}
			return
		}

		var msg WSClientMessage
		if err := json.Unmarshal(rawMsg, &msg); err != nil {
			_ = conn.WriteJSON(NewErrorEvent("INVALID_JSON", "Failed to parse message"))
			continue
		}

		switch msg.Type {
		case "message":
			h.handleWSMessage(conn, userID, msg)
		case "read":
			h.handleWSRead(userID, msg)
		case "ping":
			_ = conn.WriteJSON(NewPongEvent())
		default:
			_ = conn.WriteJSON(NewErrorEvent("UNKNOWN_TYPE", "Unknown message type: "+msg.Type))
		}
	}
}

func (h *Handler) handleWSMessage(conn *websocket.Conn, senderID int64, msg WSClientMessage) {
	ctx := context.Background()

	if msg.ConversationID <= 0 {
		_ = conn.WriteJSON(NewErrorEvent("INVALID_CONVERSATION", "conversation_id is required"))
		return
	}

	newMsg, err := h.service.SendMessage(ctx, senderID, msg.ConversationID, SendMessageRequest{Content: msg.Content})
	if err != nil {
		_ = conn.WriteJSON(NewErrorEvent("SEND_FAILED", err.Error()))
		return
	}

	h.deliver(ctx, senderID, msg.ConversationID, newMsg)
}

func (h *Handler) handleWSRead(userID int64, msg WSClientMessage) {
	if msg.ConversationID <= 0 {
		return
	}
	_ = h.service.MarkAsRead(context.Background(), userID, msg.ConversationID)
}

// deliver pushes the persisted message to both parties; if the
// recipient has no live socket an in-app notification is created.
func (h *Handler) deliver(ctx context.Context, senderID, conversationID int64, msg *domain.ChatMessage) {
	conv, err := h.service.GetConversation(ctx, senderID, conversationID)
	if err != nil {
		return
	}
	recipientID, err := h.service.RecipientID(ctx, conv, senderID)
	if err != nil {
		return
	}

	event := NewMessageEvent(conversationID, msg)
	h.hub.SendToUser(senderID, event)
	if !h.hub.SendToUser(recipientID, event) {
		h.service.NotifyIfOffline(ctx, recipientID, conv, msg)
	}
}

func (h *Handler) writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrConversationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a participant of this conversation")
	case errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "EMPTY_CONTENT", "Message content cannot be empty")
	default:
		response.Error(c, http.StatusInternalServerError, "CHAT_FAILED", "Chat operation failed")
	}
}
