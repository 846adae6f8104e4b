package repository

import (
	"context"
	"time"

	"github.com/eventflow/eventflow/internal/models"
	"gorm.io/gorm"
)

type AttendeeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attendee *models.Attendee) error
	FindByID(ctx context.Context, id uint) (*models.Attendee, error)
	FindByEventID(ctx context.Context, eventID uint, status *models.AttendeeStatus) ([]models.Attendee, error)
	ExistsForUserAndEvent(ctx context.Context, userID string, eventID uint) (bool, error)
	SetCheckedIn(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AttendeeStatus) error
	GetDB() *gorm.DB
}

type attendeeRepository struct {
	db *gorm.DB
}

func NewAttendeeRepository(db *gorm.DB) AttendeeRepository {
	return &attendeeRepository{db: db}
}

func (r *attendeeRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *attendeeRepository) Create(ctx context.Context, tx *gorm.DB, attendee *models.Attendee) error {
	return tx.WithContext(ctx).Create(attendee).Error
}

func (r *attendeeRepository) FindByID(ctx context.Context, id uint) (*models.Attendee, error) {
	var attendee models.Attendee
	if err := r.db.WithContext(ctx).First(&attendee, id).Error; err != nil {
		return nil, err
	}
	return &attendee, nil
}

func (r *attendeeRepository) FindByEventID(ctx context.Context, eventID uint, status *models.AttendeeStatus) ([]models.Attendee, error) {
	var attendees []models.Attendee
	q := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

func (r *attendeeRepository) ExistsForUserAndEvent(ctx context.Context, userID string, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendee{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *attendeeRepository) SetCheckedIn(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.Attendee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        models.AttendeeCheckedIn,
			"checked_in_at": at,
		}).Error
}

func (r *attendeeRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AttendeeStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Attendee{}).
		Where("id = ?", id).
		Update("status", status).Error
}
