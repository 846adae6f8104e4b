package service

import (
	"context"
	"errors"
	"time"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/repository"
	"github.com/eventflow/eventflow/monitoring"
	"gorm.io/gorm"
)

type AttendeeService interface {
	CheckIn(ctx context.Context, attendeeID uint, callerID string) (*models.Attendee, error)
	MarkNoShow(ctx context.Context, attendeeID uint, callerID string) (*models.Attendee, error)
	ListByEvent(ctx context.Context, eventID uint, callerID string, status *models.AttendeeStatus) ([]models.Attendee, error)
}

type attendeeService struct {
	attendeeRepo  repository.AttendeeRepository
	ticketRepo    repository.TicketRepository
	organizerRepo repository.OrganizerRepository
}

func NewAttendeeService(
	attendeeRepo repository.AttendeeRepository,
	ticketRepo repository.TicketRepository,
	organizerRepo repository.OrganizerRepository,
) AttendeeService {
	return &attendeeService{
		attendeeRepo:  attendeeRepo,
		ticketRepo:    ticketRepo,
		organizerRepo: organizerRepo,
	}
}

// CheckIn marks the attendee as arrived. A repeat check-in is a no-op that
// returns the attendee with the original timestamp intact, so gate staff
// scanning the same ticket twice see the first arrival time.
func (s *attendeeService) CheckIn(ctx context.Context, attendeeID uint, callerID string) (*models.Attendee, error) {
	attendee, err := s.findAttendee(ctx, attendeeID)
	if err != nil {
		monitoring.TrackCheckIn("not_found")
		return nil, err
	}

	if err := s.authorize(ctx, attendee.EventID, callerID); err != nil {
		monitoring.TrackCheckIn("forbidden")
		return nil, err
	}

	if attendee.Status == models.AttendeeCheckedIn {
		monitoring.TrackCheckIn("repeat")
		return attendee, nil
	}

	ticket, err := s.ticketRepo.FindByID(ctx, attendee.TicketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != models.TicketValid {
		monitoring.TrackCheckIn("invalid_ticket")
		return nil, ErrTicketNotFound
	}

	now := time.Now()
	err = s.attendeeRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.attendeeRepo.SetCheckedIn(ctx, tx, attendee.ID, now); err != nil {
			return err
		}
		return s.ticketRepo.UpdateStatus(ctx, tx, ticket.ID, models.TicketUsed)
	})
	if err != nil {
		return nil, err
	}

	attendee.Status = models.AttendeeCheckedIn
	attendee.CheckedInAt = &now
	monitoring.TrackCheckIn("success")
	return attendee, nil
}

func (s *attendeeService) MarkNoShow(ctx context.Context, attendeeID uint, callerID string) (*models.Attendee, error) {
	attendee, err := s.findAttendee(ctx, attendeeID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, attendee.EventID, callerID); err != nil {
		return nil, err
	}
	if attendee.Status != models.AttendeeRegistered {
		return attendee, nil
	}

	if err := s.attendeeRepo.UpdateStatus(ctx, s.attendeeRepo.GetDB(), attendee.ID, models.AttendeeNoShow); err != nil {
		return nil, err
	}
	attendee.Status = models.AttendeeNoShow
	return attendee, nil
}

func (s *attendeeService) ListByEvent(ctx context.Context, eventID uint, callerID string, status *models.AttendeeStatus) ([]models.Attendee, error) {
	if err := s.authorize(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	return s.attendeeRepo.FindByEventID(ctx, eventID, status)
}

func (s *attendeeService) findAttendee(ctx context.Context, id uint) (*models.Attendee, error) {
	attendee, err := s.attendeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendeeNotFound
		}
		return nil, err
	}
	return attendee, nil
}

func (s *attendeeService) authorize(ctx context.Context, eventID uint, userID string) error {
	ok, err := s.organizerRepo.IsOrganizerOf(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
