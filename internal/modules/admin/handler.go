package admin

import (
	"errors"
	"net/http"
	"strconv"

	"marketplace/internal/modules/review"
	"marketplace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin surface; the group must already be
// behind the admin role middleware.
func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/businesses/pending", h.GetPendingBusinesses)
	adminGroup.POST("/businesses/:id/approve", h.ApproveBusiness)
	adminGroup.POST("/businesses/:id/reject", h.RejectBusiness)
	adminGroup.PATCH("/reviews/:id/visibility", h.SetReviewHidden)
	adminGroup.GET("/users", h.ListUsers)
}

func (h *Handler) GetPendingBusinesses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	businesses, total, err := h.service.GetPendingBusinesses(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list pending businesses")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"businesses": businesses,
		"total":      total,
	})
}

func (h *Handler) ApproveBusiness(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	b, err := h.service.ApproveBusiness(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		case errors.Is(err, ErrAlreadyDecided):
			response.Error(c, http.StatusConflict, "ALREADY_MODERATED", "Business is not pending")
		default:
			response.Error(c, http.StatusInternalServerError, "APPROVE_FAILED", "Failed to approve business")
		}
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) RejectBusiness(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	var req RejectBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
		return
	}

	b, err := h.service.RejectBusiness(c.Request.Context(), id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrReasonRequired):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		case errors.Is(err, ErrAlreadyDecided):
			response.Error(c, http.StatusConflict, "ALREADY_MODERATED", "Business is not pending")
		default:
			response.Error(c, http.StatusInternalServerError, "REJECT_FAILED", "Failed to reject business")
		}
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) SetReviewHidden(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	var req SetReviewHiddenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetReviewHidden(c.Request.Context(), id, req.Hidden); err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
		case errors.Is(err, review.ErrAggregationFailed):
			// visibility changed, summary refresh is delayed
			response.Success(c, http.StatusOK, gin.H{"hidden": req.Hidden, "warning": "rating summary update delayed"})
		default:
			response.Error(c, http.StatusInternalServerError, "MODERATION_FAILED", "Failed to change review visibility")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hidden": req.Hidden})
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.service.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}
