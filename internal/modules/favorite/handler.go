package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"marketplace/internal/repository"

	"github.com/gin-gonic/gin"
)

// Handler serves the favorites list. It talks to the repository
// directly; there is no business logic beyond the unique pair rule,
// which lives in the repository.
type Handler struct {
	repo repository.FavoriteRepository
}

func NewHandler(repo repository.FavoriteRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.POST("/:businessId", h.AddFavorite)
		favorites.DELETE("/:businessId", h.RemoveFavorite)
		favorites.GET("/:businessId/check", h.CheckFavorite)
	}
}

func (h *Handler) GetFavorites(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage

	favorites, total, err := h.repo.GetByUserID(userID.(int64), perPage, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get favorites"})
		return
	}

	c.JSON(http.StatusOK, ToFavoriteListResponse(favorites, total, page, perPage))
}

func (h *Handler) AddFavorite(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	businessID, err := strconv.ParseInt(c.Param("businessId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid business id"})
		return
	}

	favorite, err := h.repo.Add(userID.(int64), businessID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyFavorite) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add favorite"})
		return
	}

	c.JSON(http.StatusCreated, ToFavoriteResponse(favorite))
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	businessID, err := strconv.ParseInt(c.Param("businessId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid business id"})
		return
	}

	if err := h.repo.Remove(userID.(int64), businessID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CheckFavorite(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	businessID, err := strconv.ParseInt(c.Param("businessId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid business id"})
		return
	}

	isFavorite, err := h.repo.Exists(userID.(int64), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check favorite"})
		return
	}

	c.JSON(http.StatusOK, CheckFavoriteResponse{IsFavorite: isFavorite})
}
