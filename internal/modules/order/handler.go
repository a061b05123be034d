package order

import (
	"net/http"
	"strconv"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/response"
	"marketplace/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/orders", h.Place)
	protected.GET("/orders", h.GetMyOrders)
	protected.GET("/orders/:id", h.GetByID)
	protected.POST("/orders/:id/advance", h.Advance)
	protected.POST("/orders/:id/cancel", h.Cancel)
	protected.PUT("/orders/:id/eta", h.SetETA)
	protected.GET("/businesses/:id/orders", h.GetBusinessOrders)
}

// Place creates a new order from a cart of product IDs and quantities.
func (h *Handler) Place(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	o, err := h.svc.Place(c.Request.Context(), userID, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order data")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		case ErrBusinessNotAvailable:
			response.Error(c, http.StatusUnprocessableEntity, "BUSINESS_NOT_AVAILABLE", "Business is not accepting orders")
		case ErrProductUnavailable:
			response.Error(c, http.StatusUnprocessableEntity, "PRODUCT_UNAVAILABLE", "One or more products are unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, o)
}

// Advance moves the order one step along the delivery progression.
// Triggered by the business side (courier check-in or dashboard
// confirmation); advancing a delivered order is a no-op.
func (h *Handler) Advance(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	userID := c.GetInt64("user_id")
	role := c.GetString("role")

	o, err := h.svc.Advance(c.Request.Context(), orderID, userID, role)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't run this business")
		case ErrInvalidStatusTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Order cannot be advanced from its current status")
		case ErrStatusConflict:
			response.Error(c, http.StatusConflict, "STATUS_CONFLICT", "Order status changed concurrently, reload and retry")
		case domain.ErrUnknownOrderStatus:
			response.Error(c, http.StatusUnprocessableEntity, "DATA_INTEGRITY", "Order has an unrecognized status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, o)
}

// Cancel aborts a preparing order with a mandatory reason.
func (h *Handler) Cancel(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Reason == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Cancellation reason is required")
		return
	}

	userID := c.GetInt64("user_id")
	role := c.GetString("role")

	o, err := h.svc.Cancel(c.Request.Context(), orderID, userID, role, req.Reason)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not a party to this order")
		case ErrInvalidStatusTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Order can be cancelled only while preparing")
		case ErrStatusConflict:
			response.Error(c, http.StatusConflict, "STATUS_CONFLICT", "Order status changed concurrently, reload and retry")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, o)
}

// GetByID returns one order with items and full status history.
func (h *Handler) GetByID(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	userID := c.GetInt64("user_id")
	role := c.GetString("role")

	o, err := h.svc.GetByID(c.Request.Context(), orderID, userID, role)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not a party to this order")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) GetMyOrders(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	orders, err := h.svc.GetMyOrders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, orders)
}

func (h *Handler) GetBusinessOrders(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || businessID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	userID := c.GetInt64("user_id")
	activeOnly := c.Query("active") == "true"
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	orders, err := h.svc.GetBusinessOrders(c.Request.Context(), businessID, userID, activeOnly, limit, offset)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't run this business")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// SetETA lets the business publish an estimated arrival time.
func (h *Handler) SetETA(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req SetETARequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ETA.IsZero() {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid ETA")
		return
	}

	userID := c.GetInt64("user_id")
	role := c.GetString("role")

	o, err := h.svc.SetETA(c.Request.Context(), orderID, userID, role, req.ETA)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't run this business")
		case ErrInvalidStatusTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Order is already terminal")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, o)
}
