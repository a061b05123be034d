package favorite

import (
	"time"

	"marketplace/internal/domain"
)

type FavoriteResponse struct {
	ID         int64          `json:"id"`
	BusinessID int64          `json:"business_id"`
	Business   *BusinessBrief `json:"business,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// BusinessBrief is the card shown in the favorites list
type BusinessBrief struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	City        string  `json:"city"`
	LogoURL     string  `json:"logo_url,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

type FavoriteListResponse struct {
	Favorites  []FavoriteResponse `json:"favorites"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
}

type CheckFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

func ToFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		ID:         f.ID,
		BusinessID: f.BusinessID,
		CreatedAt:  f.CreatedAt,
	}

	if f.Business != nil {
		resp.Business = &BusinessBrief{
			ID:          f.Business.ID,
			Name:        f.Business.Name,
			Category:    f.Business.Category,
			City:        f.Business.City,
			LogoURL:     f.Business.LogoURL,
			Rating:      f.Business.Rating,
			ReviewCount: f.Business.ReviewCount,
		}
	}

	return resp
}

func ToFavoriteListResponse(favorites []domain.Favorite, total int64, page, perPage int) FavoriteListResponse {
	items := make([]FavoriteResponse, len(favorites))
	for i, f := range favorites {
		items[i] = ToFavoriteResponse(&f)
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return FavoriteListResponse{
		Favorites:  items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}
