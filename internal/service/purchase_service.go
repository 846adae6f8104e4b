package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/repository"
	"github.com/eventflow/eventflow/internal/ticketcode"
	"github.com/eventflow/eventflow/monitoring"
	"github.com/eventflow/eventflow/pkg/rabbitmq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseInput is one purchase attempt against a single ticket type.
type PurchaseInput struct {
	UserID        string
	EventID       uint
	TicketTypeID  uint
	Quantity      int
	TotalAmount   decimal.Decimal
	PaymentMethod string
}

// PurchaseResult is what the caller gets back after a committed purchase.
type PurchaseResult struct {
	Transaction *models.Transaction
	Tickets     []models.Ticket
	TicketCodes []string
}

type PurchaseService interface {
	Purchase(ctx context.Context, input PurchaseInput) (*PurchaseResult, error)
	GetTransaction(ctx context.Context, id uint) (*models.Transaction, error)
	ListUserTickets(ctx context.Context, userID string) ([]models.Ticket, error)
	ListUserTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
}

type purchaseService struct {
	eventRepo       repository.EventRepository
	ticketTypeRepo  repository.TicketTypeRepository
	ticketRepo      repository.TicketRepository
	attendeeRepo    repository.AttendeeRepository
	transactionRepo repository.TransactionRepository
	codes           ticketcode.Generator
	publisher       *rabbitmq.Publisher
}

func NewPurchaseService(
	eventRepo repository.EventRepository,
	ticketTypeRepo repository.TicketTypeRepository,
	ticketRepo repository.TicketRepository,
	attendeeRepo repository.AttendeeRepository,
	transactionRepo repository.TransactionRepository,
	codes ticketcode.Generator,
	publisher *rabbitmq.Publisher,
) PurchaseService {
	return &purchaseService{
		eventRepo:       eventRepo,
		ticketTypeRepo:  ticketTypeRepo,
		ticketRepo:      ticketRepo,
		attendeeRepo:    attendeeRepo,
		transactionRepo: transactionRepo,
		codes:           codes,
		publisher:       publisher,
	}
}

// Purchase reserves inventory and issues tickets in one transaction:
// Transaction + N Tickets + N Attendees commit together or not at all. The
// ticket type row is locked for the duration, and the sold increment is a
// conditional update whose affected-row count is the authoritative
// inventory guard.
func (s *purchaseService) Purchase(ctx context.Context, input PurchaseInput) (*PurchaseResult, error) {
	started := time.Now()

	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if input.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}

	var result *PurchaseResult

	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, input.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if !event.Status.IsPubliclyVisible() {
			return ErrEventNotOnSale
		}

		tt, err := s.ticketTypeRepo.FindByIDForUpdate(ctx, tx, input.TicketTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketTypeNotFound
			}
			return err
		}
		if tt.EventID != event.ID {
			return ErrTicketTypeNotFound
		}

		now := time.Now()
		if !tt.SaleOpen(now) {
			return ErrSaleWindowClosed
		}
		if tt.Sold+input.Quantity > tt.Quantity {
			return ErrInsufficientInventory
		}

		transaction := &models.Transaction{
			UserID:        input.UserID,
			EventID:       event.ID,
			Amount:        input.TotalAmount,
			Status:        models.TransactionCompleted,
			PaymentMethod: input.PaymentMethod,
			GatewayRef:    s.codes.NewGatewayRef(),
		}
		if err := s.transactionRepo.Create(ctx, tx, transaction); err != nil {
			return err
		}

		prices := splitAmount(input.TotalAmount, input.Quantity)
		tickets := make([]models.Ticket, 0, input.Quantity)
		codes := make([]string, 0, input.Quantity)

		for i := 0; i < input.Quantity; i++ {
			ticket := models.Ticket{
				UserID:        input.UserID,
				EventID:       event.ID,
				TicketTypeID:  tt.ID,
				TransactionID: transaction.ID,
				Code:          s.codes.NewTicketCode(),
				Status:        models.TicketValid,
				Price:         prices[i],
				PurchasedAt:   now,
			}
			if err := s.ticketRepo.Create(ctx, tx, &ticket); err != nil {
				return err
			}

			attendee := models.Attendee{
				UserID:   input.UserID,
				EventID:  event.ID,
				TicketID: ticket.ID,
				Status:   models.AttendeeRegistered,
			}
			if err := s.attendeeRepo.Create(ctx, tx, &attendee); err != nil {
				return err
			}

			tickets = append(tickets, ticket)
			codes = append(codes, ticket.Code)
		}

		ok, err := s.ticketTypeRepo.IncrementSold(ctx, tx, tt.ID, input.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientInventory
		}

		result = &PurchaseResult{
			Transaction: transaction,
			Tickets:     tickets,
			TicketCodes: codes,
		}
		return nil
	})
	if err != nil {
		monitoring.TrackPurchase(purchaseOutcome(err), 0, time.Since(started))
		return nil, err
	}

	monitoring.TrackPurchase("success", input.Quantity, time.Since(started))

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyTicketPurchased, result.Transaction)
	}
	return result, nil
}

func (s *purchaseService) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return transaction, nil
}

func (s *purchaseService) ListUserTickets(ctx context.Context, userID string) ([]models.Ticket, error) {
	return s.ticketRepo.FindByUser(ctx, userID)
}

func (s *purchaseService) ListUserTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.transactionRepo.FindByUser(ctx, userID)
}

// splitAmount divides the total evenly across n tickets at cent precision.
// The division remainder lands on the first ticket so the per-ticket prices
// always sum back to the transaction amount.
func splitAmount(total decimal.Decimal, n int) []decimal.Decimal {
	count := decimal.NewFromInt(int64(n))
	unit := total.Div(count).Truncate(2)
	remainder := total.Sub(unit.Mul(count))

	prices := make([]decimal.Decimal, n)
	for i := range prices {
		prices[i] = unit
	}
	prices[0] = prices[0].Add(remainder)
	return prices
}

func purchaseOutcome(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientInventory):
		return "sold_out"
	case errors.Is(err, ErrSaleWindowClosed), errors.Is(err, ErrEventNotOnSale):
		return "closed"
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrTicketTypeNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
