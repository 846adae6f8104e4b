package repository

import (
	"context"

	"github.com/eventflow/eventflow/internal/models"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	FindByID(ctx context.Context, id uint) (*models.Ticket, error)
	FindByCode(ctx context.Context, code string) (*models.Ticket, error)
	FindByUser(ctx context.Context, userID string) ([]models.Ticket, error)
	CountActiveByTransaction(ctx context.Context, tx *gorm.DB, transactionID uint) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.TicketStatus) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	return tx.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByCode(ctx context.Context, code string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Preload("TicketType").
		Where("user_id = ?", userID).
		Order("purchased_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// CountActiveByTransaction counts the tickets of a payment that are still
// live (valid or used); when it reaches zero the payment itself is refunded.
func (r *ticketRepository) CountActiveByTransaction(ctx context.Context, tx *gorm.DB, transactionID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("transaction_id = ? AND status IN ?", transactionID,
			[]models.TicketStatus{models.TicketValid, models.TicketUsed}).
		Count(&count).Error
	return count, err
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.TicketStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Update("status", status).Error
}
