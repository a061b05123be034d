package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	// Public routes (no auth required)
	if public != nil {
		public.GET("/businesses/:id/reviews", h.GetByBusiness)
	}

	// Protected routes (auth required)
	if protected != nil {
		protected.POST("/reviews", h.Create)
		protected.PUT("/reviews/:id", h.Update)
		protected.DELETE("/reviews/:id", h.Delete)
		protected.POST("/reviews/:id/helpful", h.MarkHelpful)
	}
}

// Create stores a new review. Allowed only after a delivered order
// from the business, and only once per user per business.
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_REQUEST", "message": "Invalid request body"}})
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"}})
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_REQUEST", "message": "Invalid input"}})
		case ErrReviewNotAllowed:
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": gin.H{"code": "FORBIDDEN", "message": "You can review only after a delivered order"}})
		case ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": gin.H{"code": "CONFLICT", "message": "Only one review per user per business"}})
		case ErrAggregationFailed:
			// The review itself was saved; report the degraded state.
			c.JSON(http.StatusCreated, gin.H{"success": true, "data": rv, "warning": "rating summary update delayed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": gin.H{"code": "INTERNAL", "message": "Internal error"}})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": rv})
}

// GetByBusiness returns the paginated, non-hidden reviews of one business.
func (h *Handler) GetByBusiness(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || businessID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_ID", "message": "Invalid business ID"}})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.svc.GetByBusiness(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		if err == ErrInvalidRequest {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_REQUEST", "message": "Invalid input"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": gin.H{"code": "INTERNAL", "message": "Internal error"}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// Update edits the caller's own review.
func (h *Handler) Update(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_ID", "message": "Invalid review ID"}})
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_REQUEST", "message": "Invalid request body"}})
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"}})
		return
	}

	rv, err := h.svc.Update(c.Request.Context(), reviewID, userID, req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_REQUEST", "message": "Invalid input"}})
		case ErrForbidden:
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": gin.H{"code": "FORBIDDEN", "message": "You can edit only your own review"}})
		case ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND", "message": "Review not found"}})
		case ErrAggregationFailed:
			c.JSON(http.StatusOK, gin.H{"success": true, "data": rv, "warning": "rating summary update delayed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": gin.H{"code": "INTERNAL", "message": "Internal error"}})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rv})
}

// Delete removes the caller's own review (admins may remove any).
func (h *Handler) Delete(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_ID", "message": "Invalid review ID"}})
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"}})
		return
	}
	isAdmin := c.GetString("role") == "admin"

	if err := h.svc.Delete(c.Request.Context(), reviewID, userID, isAdmin); err != nil {
		switch err {
		case ErrForbidden:
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": gin.H{"code": "FORBIDDEN", "message": "You can delete only your own review"}})
		case ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND", "message": "Review not found"}})
		case ErrAggregationFailed:
			c.JSON(http.StatusOK, gin.H{"success": true, "warning": "rating summary update delayed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": gin.H{"code": "INTERNAL", "message": "Internal error"}})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkHelpful records one helpful vote per user per review.
func (h *Handler) MarkHelpful(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_ID", "message": "Invalid review ID"}})
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"}})
		return
	}

	count, err := h.svc.MarkHelpful(c.Request.Context(), reviewID, userID)
	if err != nil {
		switch err {
		case ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": gin.H{"code": "CONFLICT", "message": "You already marked this review helpful"}})
		case ErrInvalidRequest:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_REQUEST", "message": "Invalid input"}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": gin.H{"code": "INTERNAL", "message": "Internal error"}})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"helpful_count": count}})
}
