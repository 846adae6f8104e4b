package repository

import (
	"context"

	"github.com/eventflow/eventflow/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *models.Review) error
	FindByEventID(ctx context.Context, eventID uint) ([]models.Review, error)
	AverageRating(ctx context.Context, tx *gorm.DB, eventID uint) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *models.Review) error {
	return tx.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, tx *gorm.DB, eventID uint) (float64, error) {
	var avg float64
	err := tx.WithContext(ctx).
		Model(&models.Review{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}
