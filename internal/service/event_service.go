package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/repository"
	"github.com/eventflow/eventflow/monitoring"
	"github.com/eventflow/eventflow/pkg/cache"
	"github.com/eventflow/eventflow/pkg/rabbitmq"
	"gorm.io/gorm"
)

type EventService interface {
	Create(ctx context.Context, organizerID string, event *models.Event, ticketTypes []models.TicketType) (*models.Event, error)
	Approve(ctx context.Context, eventID uint) (*models.Event, error)
	Reject(ctx context.Context, eventID uint, reason string) (*models.Event, error)
	Start(ctx context.Context, eventID uint, callerID string) (*models.Event, error)
	Complete(ctx context.Context, eventID uint, callerID string) (*models.Event, error)
	Cancel(ctx context.Context, eventID uint, callerID string) (*models.Event, error)
	Update(ctx context.Context, eventID uint, organizerID string, patch EventPatch) (*models.Event, error)
	Delete(ctx context.Context, eventID uint, organizerID string) error
	SetFeatured(ctx context.Context, eventID uint, featured bool) (*models.Event, error)
	PublicList(ctx context.Context) ([]models.Event, error)
	PublicShow(ctx context.Context, slug string) (*models.Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error)
	ListPending(ctx context.Context) ([]models.Event, error)
}

// EventPatch carries the organizer-editable fields; nil means "leave as is".
// Capacity is the immutable business ceiling and has no patch field.
type EventPatch struct {
	Title       *string
	Description *string
	Location    *string
	StartAt     *time.Time
	EndAt       *time.Time
	CategoryID  *uint
}

type eventService struct {
	eventRepo      repository.EventRepository
	categoryRepo   repository.CategoryRepository
	ticketTypeRepo repository.TicketTypeRepository
	organizerRepo  repository.OrganizerRepository
	publisher      *rabbitmq.Publisher
	cache          *cache.EventCache
}

func NewEventService(
	eventRepo repository.EventRepository,
	categoryRepo repository.CategoryRepository,
	ticketTypeRepo repository.TicketTypeRepository,
	organizerRepo repository.OrganizerRepository,
	publisher *rabbitmq.Publisher,
	eventCache *cache.EventCache,
) EventService {
	return &eventService{
		eventRepo:      eventRepo,
		categoryRepo:   categoryRepo,
		ticketTypeRepo: ticketTypeRepo,
		organizerRepo:  organizerRepo,
		publisher:      publisher,
		cache:          eventCache,
	}
}

func (s *eventService) Create(ctx context.Context, organizerID string, event *models.Event, ticketTypes []models.TicketType) (*models.Event, error) {
	now := time.Now()
	if event.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !event.StartAt.After(now) {
		return nil, fmt.Errorf("%w: start date must be in the future", ErrValidation)
	}
	if !event.EndAt.After(event.StartAt) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}
	if event.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}
	for i := range ticketTypes {
		tt := &ticketTypes[i]
		if tt.Price.IsNegative() {
			return nil, fmt.Errorf("%w: ticket type %q price must not be negative", ErrValidation, tt.Name)
		}
		if tt.Quantity < 1 {
			return nil, fmt.Errorf("%w: ticket type %q quantity must be at least 1", ErrValidation, tt.Name)
		}
	}

	if _, err := s.categoryRepo.FindByID(ctx, event.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	event.Status = models.EventPendingApproval
	if event.Slug == "" {
		event.Slug = slugify(event.Title)
	}

	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.eventRepo.Create(ctx, tx, event); err != nil {
			return err
		}
		if err := s.organizerRepo.Attach(ctx, tx, event.ID, organizerID, "owner"); err != nil {
			return err
		}
		for i := range ticketTypes {
			ticketTypes[i].EventID = event.ID
			ticketTypes[i].Sold = 0
			if err := s.ticketTypeRepo.Create(ctx, tx, &ticketTypes[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	event.TicketTypes = ticketTypes
	return event, nil
}

func (s *eventService) Approve(ctx context.Context, eventID uint) (*models.Event, error) {
	event, err := s.transition(ctx, eventID, models.EventApproved)
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyEventApproved, event)
	}
	return event, nil
}

func (s *eventService) Reject(ctx context.Context, eventID uint, reason string) (*models.Event, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(event.Status, models.EventRejected) {
		return nil, ErrInvalidTransition
	}

	event.Status = models.EventRejected
	event.RejectReason = reason
	if err := s.eventRepo.Save(ctx, s.eventRepo.GetDB(), event); err != nil {
		return nil, err
	}

	monitoring.TrackTransition(string(models.EventRejected))
	s.afterTransition(ctx, event)
	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyEventRejected, event)
	}
	return event, nil
}

func (s *eventService) Start(ctx context.Context, eventID uint, callerID string) (*models.Event, error) {
	if err := s.authorizeOrganizer(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	return s.transition(ctx, eventID, models.EventLive)
}

func (s *eventService) Complete(ctx context.Context, eventID uint, callerID string) (*models.Event, error) {
	if err := s.authorizeOrganizer(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	return s.transition(ctx, eventID, models.EventCompleted)
}

func (s *eventService) Cancel(ctx context.Context, eventID uint, callerID string) (*models.Event, error) {
	if err := s.authorizeOrganizer(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	event, err := s.transition(ctx, eventID, models.EventCancelled)
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyEventCancelled, event)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID uint, organizerID string, patch EventPatch) (*models.Event, error) {
	if err := s.authorizeOrganizer(ctx, eventID, organizerID); err != nil {
		return nil, err
	}

	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.StartAt != nil {
		event.StartAt = *patch.StartAt
	}
	if patch.EndAt != nil {
		event.EndAt = *patch.EndAt
	}
	if patch.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *patch.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		event.CategoryID = *patch.CategoryID
	}

	if !event.EndAt.After(event.StartAt) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}

	if err := s.eventRepo.Save(ctx, s.eventRepo.GetDB(), event); err != nil {
		return nil, err
	}
	s.afterTransition(ctx, event)
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, eventID uint, organizerID string) error {
	if err := s.authorizeOrganizer(ctx, eventID, organizerID); err != nil {
		return err
	}
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.SoftDelete(ctx, eventID); err != nil {
		return err
	}
	s.afterTransition(ctx, event)
	return nil
}

func (s *eventService) SetFeatured(ctx context.Context, eventID uint, featured bool) (*models.Event, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	event.Featured = featured
	if err := s.eventRepo.Save(ctx, s.eventRepo.GetDB(), event); err != nil {
		return nil, err
	}
	s.afterTransition(ctx, event)
	return event, nil
}

func (s *eventService) PublicList(ctx context.Context) ([]models.Event, error) {
	if s.cache != nil {
		if events, ok := s.cache.GetPublicList(ctx); ok {
			return events, nil
		}
	}

	events, err := s.eventRepo.FindPublic(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetPublicList(ctx, events)
	}
	return events, nil
}

// PublicShow hides non-visible events behind NotFound: a caller who knows
// the slug of a draft or rejected event learns nothing.
func (s *eventService) PublicShow(ctx context.Context, slug string) (*models.Event, error) {
	if s.cache != nil {
		if event, ok := s.cache.GetBySlug(ctx, slug); ok {
			return event, nil
		}
	}

	event, err := s.eventRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !event.Status.IsPubliclyVisible() {
		return nil, ErrEventNotFound
	}

	if s.cache != nil {
		s.cache.SetBySlug(ctx, event)
	}
	return event, nil
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	return s.eventRepo.FindByOrganizer(ctx, organizerID)
}

func (s *eventService) ListPending(ctx context.Context) ([]models.Event, error) {
	db := s.eventRepo.GetDB()
	var events []models.Event
	err := db.WithContext(ctx).
		Where("status = ?", models.EventPendingApproval).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (s *eventService) findEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) authorizeOrganizer(ctx context.Context, eventID uint, userID string) error {
	ok, err := s.organizerRepo.IsOrganizerOf(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// transition applies the status table under the event row lock so two racing
// admins cannot both move the same event.
func (s *eventService) transition(ctx context.Context, eventID uint, to models.EventStatus) (*models.Event, error) {
	var result *models.Event

	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if !models.CanTransition(event.Status, to) {
			return ErrInvalidTransition
		}
		if err := s.eventRepo.UpdateStatus(ctx, tx, eventID, to); err != nil {
			return err
		}
		event.Status = to
		result = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.TrackTransition(string(to))
	s.afterTransition(ctx, result)
	return result, nil
}

func (s *eventService) afterTransition(ctx context.Context, event *models.Event) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, event.Slug)
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
