package notification

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/notifications", h.List)
	protected.PATCH("/notifications/:id/read", h.MarkAsRead)
	protected.PATCH("/notifications/read-all", h.MarkAllAsRead)
}

type listResponse struct {
	Notifications []notificationItem `json:"notifications"`
	UnreadCount   int64              `json:"unread_count"`
}

type notificationItem struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt string         `json:"created_at"`
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, unread, err := h.service.GetUserNotifications(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get notifications")
		return
	}

	out := listResponse{
		Notifications: make([]notificationItem, 0, len(list)),
		UnreadCount:   unread,
	}
	for _, n := range list {
		out.Notifications = append(out.Notifications, notificationItem{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	switch err := h.service.MarkAsRead(c.Request.Context(), id, userID); {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
	default:
		response.Success(c, http.StatusOK, gin.H{"status": "read"})
	}
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "all_read"})
}
