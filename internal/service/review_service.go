package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/repository"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, userID string, eventID uint, rating int, comment string) (*models.Review, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	attendeeRepo repository.AttendeeRepository
	eventRepo    repository.EventRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	attendeeRepo repository.AttendeeRepository,
	eventRepo repository.EventRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		attendeeRepo: attendeeRepo,
		eventRepo:    eventRepo,
	}
}

// Create stores a review for an event the user actually attended. The unique
// (event_id, user_id) index is the authoritative duplicate guard; the
// attendance check runs first so non-attendees never reach the insert. The
// event's average rating is recomputed in the same transaction.
func (s *reviewService) Create(ctx context.Context, userID string, eventID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	attended, err := s.attendeeRepo.ExistsForUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if !attended {
		return nil, ErrNotAttended
	}

	review := &models.Review{
		UserID:  userID,
		EventID: eventID,
		Rating:  rating,
		Comment: comment,
	}

	err = s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReview
			}
			return err
		}

		avg, err := s.reviewRepo.AverageRating(ctx, tx, eventID)
		if err != nil {
			return err
		}
		return s.eventRepo.UpdateAverageRating(ctx, tx, eventID, avg)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) ListByEvent(ctx context.Context, eventID uint) ([]models.Review, error) {
	return s.reviewRepo.FindByEventID(ctx, eventID)
}
