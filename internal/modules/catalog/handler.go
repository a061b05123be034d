package catalog

import (
	"net/http"
	"strconv"

	"marketplace/internal/pkg/response"
	"marketplace/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/businesses", h.ListBusinesses)
	v1.GET("/businesses/:id", h.GetBusiness)
	v1.GET("/businesses/:id/products", h.ListProducts)
}

func (h *Handler) RegisterOwnerRoutes(owner *gin.RouterGroup) {
	owner.POST("/businesses", h.CreateBusiness)
	owner.GET("/businesses/my", h.GetMyBusiness)
	owner.PUT("/businesses/:id", h.UpdateBusiness)
	owner.POST("/businesses/:id/products", h.CreateProduct)
	owner.PUT("/products/:id", h.UpdateProduct)
	owner.DELETE("/products/:id", h.DeleteProduct)
}

func (h *Handler) ListBusinesses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	minRating, _ := strconv.ParseFloat(c.Query("min_rating"), 64)

	f := repository.BusinessFilters{
		City:      c.Query("city"),
		Category:  c.Query("category"),
		MinRating: minRating,
		Limit:     limit,
		Offset:    offset,
	}

	businesses, total, err := h.svc.ListBusinesses(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list businesses")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"businesses": businesses,
		"total":      total,
	})
}

func (h *Handler) GetBusiness(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	// viewer identity is optional here; the route is public
	viewerID := c.GetInt64("user_id")
	viewerRole := c.GetString("role")

	b, err := h.svc.GetBusiness(c.Request.Context(), id, viewerID, viewerRole)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load business")
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListProducts(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := h.svc.ListProducts(c.Request.Context(), id, limit, offset)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list products")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) CreateBusiness(c *gin.Context) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.svc.CreateBusiness(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		switch err {
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Business owner account required")
		case ErrBusinessAlreadyOwned:
			response.Error(c, http.StatusConflict, "BUSINESS_EXISTS", "This account already has a business")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to create business")
		}
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) GetMyBusiness(c *gin.Context) {
	b, err := h.svc.GetMyBusiness(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No business for this account")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load business")
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdateBusiness(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.svc.UpdateBusiness(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeOwnerError(c, err, "Failed to update business")
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.svc.CreateProduct(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeOwnerError(c, err, "Failed to create product")
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.svc.UpdateProduct(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeOwnerError(c, err, "Failed to update product")
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeOwnerError(c, err, "Failed to delete product")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeOwnerError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this business")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid data")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}
