package repository

import (
	"context"

	"github.com/eventflow/eventflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketTypeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, tt *models.TicketType) error
	FindByID(ctx context.Context, id uint) (*models.TicketType, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketType, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.TicketType, error)
	// IncrementSold adds n to the sold counter only while sold+n stays within
	// quantity; it reports whether the reservation took effect.
	IncrementSold(ctx context.Context, tx *gorm.DB, id uint, n int) (bool, error)
	// DecrementSold releases n units back, flooring at zero.
	DecrementSold(ctx context.Context, tx *gorm.DB, id uint, n int) error
}

type ticketTypeRepository struct {
	db *gorm.DB
}

func NewTicketTypeRepository(db *gorm.DB) TicketTypeRepository {
	return &ticketTypeRepository{db: db}
}

func (r *ticketTypeRepository) Create(ctx context.Context, tx *gorm.DB, tt *models.TicketType) error {
	return tx.WithContext(ctx).Create(tt).Error
}

func (r *ticketTypeRepository) FindByID(ctx context.Context, id uint) (*models.TicketType, error) {
	var tt models.TicketType
	if err := r.db.WithContext(ctx).First(&tt, id).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}

// FindByIDForUpdate locks the ticket type row so concurrent purchases against
// the same tier are serialized for the life of the transaction.
func (r *ticketTypeRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketType, error) {
	q := tx.WithContext(ctx)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var tt models.TicketType
	if err := q.First(&tt, id).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *ticketTypeRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.TicketType, error) {
	var tts []models.TicketType
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("price ASC").
		Find(&tts).Error
	if err != nil {
		return nil, err
	}
	return tts, nil
}

// IncrementSold is the authoritative inventory guard: the condition rides on
// the UPDATE itself, so even without the row lock two racing purchases cannot
// both slip past the quantity ceiling.
func (r *ticketTypeRepository) IncrementSold(ctx context.Context, tx *gorm.DB, id uint, n int) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.TicketType{}).
		Where("id = ? AND sold + ? <= quantity", id, n).
		UpdateColumn("sold", gorm.Expr("sold + ?", n))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ticketTypeRepository) DecrementSold(ctx context.Context, tx *gorm.DB, id uint, n int) error {
	return tx.WithContext(ctx).
		Model(&models.TicketType{}).
		Where("id = ? AND sold >= ?", id, n).
		UpdateColumn("sold", gorm.Expr("sold - ?", n)).Error
}
