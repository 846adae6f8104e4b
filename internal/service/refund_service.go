package service

import (
	"context"
	"errors"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/repository"
	"github.com/eventflow/eventflow/pkg/rabbitmq"
	"gorm.io/gorm"
)

type RefundService interface {
	Request(ctx context.Context, userID string, ticketID uint, reason string) (*models.Refund, error)
	Approve(ctx context.Context, refundID uint) (*models.Refund, error)
	Reject(ctx context.Context, refundID uint) (*models.Refund, error)
	Process(ctx context.Context, refundID uint) (*models.Refund, error)
	ListPending(ctx context.Context) ([]models.Refund, error)
}

type refundService struct {
	refundRepo      repository.RefundRepository
	ticketRepo      repository.TicketRepository
	ticketTypeRepo  repository.TicketTypeRepository
	transactionRepo repository.TransactionRepository
	eventRepo       repository.EventRepository
	publisher       *rabbitmq.Publisher
}

func NewRefundService(
	refundRepo repository.RefundRepository,
	ticketRepo repository.TicketRepository,
	ticketTypeRepo repository.TicketTypeRepository,
	transactionRepo repository.TransactionRepository,
	eventRepo repository.EventRepository,
	publisher *rabbitmq.Publisher,
) RefundService {
	return &refundService{
		refundRepo:      refundRepo,
		ticketRepo:      ticketRepo,
		ticketTypeRepo:  ticketTypeRepo,
		transactionRepo: transactionRepo,
		eventRepo:       eventRepo,
		publisher:       publisher,
	}
}

// Request opens a refund for a ticket the caller owns. The refunded amount is
// the price actually paid for that ticket, not the current tier price.
func (s *refundService) Request(ctx context.Context, userID string, ticketID uint, reason string) (*models.Refund, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, ErrForbidden
	}
	if ticket.Status != models.TicketValid {
		return nil, ErrTicketNotRefundable
	}

	open, err := s.refundRepo.ExistsOpenForTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrDuplicateRefund
	}

	refund := &models.Refund{
		UserID:        userID,
		EventID:       ticket.EventID,
		TicketID:      ticket.ID,
		TransactionID: ticket.TransactionID,
		Amount:        ticket.Price,
		Reason:        reason,
		Status:        models.RefundPending,
	}
	if err := s.refundRepo.Create(ctx, s.eventRepo.GetDB(), refund); err != nil {
		return nil, err
	}
	return refund, nil
}

func (s *refundService) Approve(ctx context.Context, refundID uint) (*models.Refund, error) {
	return s.moderate(ctx, refundID, models.RefundApproved)
}

func (s *refundService) Reject(ctx context.Context, refundID uint) (*models.Refund, error) {
	return s.moderate(ctx, refundID, models.RefundRejected)
}

func (s *refundService) moderate(ctx context.Context, refundID uint, to models.RefundStatus) (*models.Refund, error) {
	refund, err := s.findRefund(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if refund.Status != models.RefundPending {
		return nil, ErrRefundNotApproved
	}
	if err := s.refundRepo.UpdateStatus(ctx, s.eventRepo.GetDB(), refundID, to); err != nil {
		return nil, err
	}
	refund.Status = to
	return refund, nil
}

// Process settles an approved refund: the ticket flips to refunded, the sold
// counter releases one unit, and the payment flips to refunded once every one
// of its tickets has been refunded. All of it commits together.
func (s *refundService) Process(ctx context.Context, refundID uint) (*models.Refund, error) {
	refund, err := s.findRefund(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if refund.Status != models.RefundApproved {
		return nil, ErrRefundNotApproved
	}

	err = s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := s.ticketRepo.FindByID(ctx, refund.TicketID)
		if err != nil {
			return err
		}

		if err := s.ticketRepo.UpdateStatus(ctx, tx, ticket.ID, models.TicketRefunded); err != nil {
			return err
		}
		if err := s.ticketTypeRepo.DecrementSold(ctx, tx, ticket.TicketTypeID, 1); err != nil {
			return err
		}

		remaining, err := s.ticketRepo.CountActiveByTransaction(ctx, tx, ticket.TransactionID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := s.transactionRepo.UpdateStatus(ctx, tx, ticket.TransactionID, models.TransactionRefunded); err != nil {
				return err
			}
		}

		return s.refundRepo.UpdateStatus(ctx, tx, refundID, models.RefundProcessed)
	})
	if err != nil {
		return nil, err
	}

	refund.Status = models.RefundProcessed
	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyRefundProcessed, refund)
	}
	return refund, nil
}

func (s *refundService) ListPending(ctx context.Context) ([]models.Refund, error) {
	return s.refundRepo.FindByStatus(ctx, models.RefundPending)
}

func (s *refundService) findRefund(ctx context.Context, id uint) (*models.Refund, error) {
	refund, err := s.refundRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefundNotFound
		}
		return nil, err
	}
	return refund, nil
}
