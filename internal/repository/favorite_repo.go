package repository

import (
	"errors"

	"marketplace/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorite  = errors.New("business already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type FavoriteRepository interface {
	Add(userID, businessID int64) (*domain.Favorite, error)
	Remove(userID, businessID int64) error
	GetByUserID(userID int64, limit, offset int) ([]domain.Favorite, int64, error)
	Exists(userID, businessID int64) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(userID, businessID int64) (*domain.Favorite, error) {
	exists, err := r.Exists(userID, businessID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	favorite := &domain.Favorite{
		UserID:     userID,
		BusinessID: businessID,
	}

	if err := r.db.Create(favorite).Error; err != nil {
		return nil, err
	}

	if err := r.db.Preload("Business").First(favorite, favorite.ID).Error; err != nil {
		return nil, err
	}

	return favorite, nil
}

func (r *favoriteRepository) Remove(userID, businessID int64) error {
	result := r.db.Where("user_id = ? AND business_id = ?", userID, businessID).
		Delete(&domain.Favorite{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

func (r *favoriteRepository) GetByUserID(userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	var favorites []domain.Favorite
	var total int64

	if err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Where("user_id = ?", userID).
		Preload("Business").
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&favorites).Error; err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}

func (r *favoriteRepository) Exists(userID, businessID int64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
