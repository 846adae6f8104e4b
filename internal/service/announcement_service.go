package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/repository"
	"github.com/eventflow/eventflow/pkg/rabbitmq"
	"gorm.io/gorm"
)

type AnnouncementService interface {
	Create(ctx context.Context, eventID uint, callerID, title, message string) (*models.Announcement, error)
	Dispatch(ctx context.Context, announcementID uint, callerID string) (*models.Announcement, error)
	ListByEvent(ctx context.Context, eventID uint, callerID string) ([]models.Announcement, error)
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	organizerRepo    repository.OrganizerRepository
	publisher        *rabbitmq.Publisher
}

func NewAnnouncementService(
	announcementRepo repository.AnnouncementRepository,
	organizerRepo repository.OrganizerRepository,
	publisher *rabbitmq.Publisher,
) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		organizerRepo:    organizerRepo,
		publisher:        publisher,
	}
}

func (s *announcementService) Create(ctx context.Context, eventID uint, callerID, title, message string) (*models.Announcement, error) {
	if title == "" || message == "" {
		return nil, fmt.Errorf("%w: title and message are required", ErrValidation)
	}
	if err := s.authorize(ctx, eventID, callerID); err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		EventID:   eventID,
		CreatedBy: callerID,
		Title:     title,
		Message:   message,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// Dispatch publishes the announcement to the message bus and stamps sent_at.
// Dispatching twice is a no-op; the original timestamp stands.
func (s *announcementService) Dispatch(ctx context.Context, announcementID uint, callerID string) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	if err := s.authorize(ctx, announcement.EventID, callerID); err != nil {
		return nil, err
	}

	if announcement.SentAt != nil {
		return announcement, nil
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(rabbitmq.KeyAnnouncementCreated, announcement); err != nil {
			return nil, fmt.Errorf("dispatch announcement: %w", err)
		}
	}

	now := time.Now()
	if err := s.announcementRepo.MarkSent(ctx, announcementID, now); err != nil {
		return nil, err
	}
	announcement.SentAt = &now
	return announcement, nil
}

func (s *announcementService) ListByEvent(ctx context.Context, eventID uint, callerID string) ([]models.Announcement, error) {
	if err := s.authorize(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	return s.announcementRepo.FindByEventID(ctx, eventID)
}

func (s *announcementService) authorize(ctx context.Context, eventID uint, userID string) error {
	ok, err := s.organizerRepo.IsOrganizerOf(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
