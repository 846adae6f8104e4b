package repository

import (
	"context"

	"github.com/eventflow/eventflow/internal/models"
	"gorm.io/gorm"
)

type RefundRepository interface {
	Create(ctx context.Context, tx *gorm.DB, refund *models.Refund) error
	FindByID(ctx context.Context, id uint) (*models.Refund, error)
	FindByStatus(ctx context.Context, status models.RefundStatus) ([]models.Refund, error)
	ExistsOpenForTicket(ctx context.Context, ticketID uint) (bool, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.RefundStatus) error
}

type refundRepository struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) Create(ctx context.Context, tx *gorm.DB, refund *models.Refund) error {
	return tx.WithContext(ctx).Create(refund).Error
}

func (r *refundRepository) FindByID(ctx context.Context, id uint) (*models.Refund, error) {
	var refund models.Refund
	if err := r.db.WithContext(ctx).First(&refund, id).Error; err != nil {
		return nil, err
	}
	return &refund, nil
}

func (r *refundRepository) FindByStatus(ctx context.Context, status models.RefundStatus) ([]models.Refund, error) {
	var refunds []models.Refund
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&refunds).Error
	if err != nil {
		return nil, err
	}
	return refunds, nil
}

// ExistsOpenForTicket reports whether the ticket already has a refund that is
// pending or approved; a second request while one is open is rejected.
func (r *refundRepository) ExistsOpenForTicket(ctx context.Context, ticketID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Refund{}).
		Where("ticket_id = ? AND status IN ?", ticketID,
			[]models.RefundStatus{models.RefundPending, models.RefundApproved}).
		Count(&count).Error
	return count > 0, err
}

func (r *refundRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.RefundStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Refund{}).
		Where("id = ?", id).
		Update("status", status).Error
}
