package repository

import (
	"context"

	"github.com/eventflow/eventflow/internal/models"
	"gorm.io/gorm"
)

type OrganizerRepository interface {
	Attach(ctx context.Context, tx *gorm.DB, eventID uint, userID, role string) error
	IsOrganizerOf(ctx context.Context, userID string, eventID uint) (bool, error)
}

type organizerRepository struct {
	db *gorm.DB
}

func NewOrganizerRepository(db *gorm.DB) OrganizerRepository {
	return &organizerRepository{db: db}
}

func (r *organizerRepository) Attach(ctx context.Context, tx *gorm.DB, eventID uint, userID, role string) error {
	return tx.WithContext(ctx).Create(&models.EventOrganizer{
		EventID: eventID,
		UserID:  userID,
		Role:    role,
	}).Error
}

func (r *organizerRepository) IsOrganizerOf(ctx context.Context, userID string, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EventOrganizer{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}
