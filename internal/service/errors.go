package service

import "errors"

// Sentinel errors surfaced by the domain services. Handlers map these onto
// HTTP status codes; nothing transport-specific leaks below this line.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTicketTypeNotFound   = errors.New("ticket type not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrAttendeeNotFound     = errors.New("attendee not found")
	ErrRefundNotFound       = errors.New("refund not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")

	ErrForbidden = errors.New("caller is not allowed to manage this event")

	// ErrValidation wraps field-level input failures; callers use errors.Is
	// and surface the wrapped detail.
	ErrValidation = errors.New("validation failed")

	ErrInvalidTransition     = errors.New("illegal event status transition")
	ErrEventNotOnSale        = errors.New("event is not open for ticket sales")
	ErrSaleWindowClosed      = errors.New("ticket type sale window is closed")
	ErrInsufficientInventory = errors.New("not enough tickets remaining")

	ErrDuplicateReview = errors.New("user has already reviewed this event")
	ErrNotAttended     = errors.New("user has no attendance record for this event")

	ErrTicketNotRefundable = errors.New("ticket is not refundable")
	ErrDuplicateRefund     = errors.New("ticket already has an open refund request")
	ErrRefundNotApproved   = errors.New("refund has not been approved")

	ErrCategoryInUse = errors.New("category still has events attached")
)
