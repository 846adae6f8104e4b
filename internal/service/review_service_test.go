package service

import (
	"context"
	"testing"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewAttendeeRepository(db),
		repository.NewEventRepository(db),
	)
}

func TestCreateReview_RequiresAttendance(t *testing.T) {
	db := setupDB(t)
	event, _ := seedEvent(t, db, models.EventCompleted, 10, 0)
	svc := newReviewService(db)

	_, err := svc.Create(context.Background(), "never-attended", event.ID, 5, "great")
	assert.ErrorIs(t, err, ErrNotAttended)

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateReview_Success(t *testing.T) {
	db := setupDB(t)
	event, attendee := seedAttendee(t, db)
	svc := newReviewService(db)

	review, err := svc.Create(context.Background(), attendee.UserID, event.ID, 4, "good show")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	// Average rating lands on the event.
	var reloaded models.Event
	require.NoError(t, db.First(&reloaded, event.ID).Error)
	require.NotNil(t, reloaded.AverageRating)
	assert.InDelta(t, 4.0, *reloaded.AverageRating, 0.001)
}

func TestCreateReview_DuplicateRejected(t *testing.T) {
	db := setupDB(t)
	event, attendee := seedAttendee(t, db)
	svc := newReviewService(db)

	_, err := svc.Create(context.Background(), attendee.UserID, event.ID, 4, "good")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), attendee.UserID, event.ID, 2, "changed my mind")
	assert.ErrorIs(t, err, ErrDuplicateReview)

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateReview_RatingBounds(t *testing.T) {
	db := setupDB(t)
	event, attendee := seedAttendee(t, db)
	svc := newReviewService(db)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), attendee.UserID, event.ID, rating, "")
		assert.ErrorIs(t, err, ErrValidation, "rating %d", rating)
	}
}

func TestCreateReview_EventMissing(t *testing.T) {
	db := setupDB(t)
	svc := newReviewService(db)

	_, err := svc.Create(context.Background(), "user-1", 999, 3, "")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestAverageRating_AcrossUsers(t *testing.T) {
	db := setupDB(t)
	event, attendee := seedAttendee(t, db)

	// Second attendee through the purchase path.
	var tt models.TicketType
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&tt).Error)
	_, err := newPurchaseService(db).Purchase(context.Background(), PurchaseInput{
		UserID:       "guest-2",
		EventID:      event.ID,
		TicketTypeID: tt.ID,
		Quantity:     1,
		TotalAmount:  tt.Price,
	})
	require.NoError(t, err)

	svc := newReviewService(db)
	_, err = svc.Create(context.Background(), attendee.UserID, event.ID, 5, "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "guest-2", event.ID, 2, "")
	require.NoError(t, err)

	var reloaded models.Event
	require.NoError(t, db.First(&reloaded, event.ID).Error)
	require.NotNil(t, reloaded.AverageRating)
	assert.InDelta(t, 3.5, *reloaded.AverageRating, 0.001)
}
