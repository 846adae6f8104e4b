package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketTypeInput struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	SaleStartAt time.Time       `json:"sale_start_at" validate:"required"`
	SaleEndAt   time.Time       `json:"sale_end_at" validate:"required,gtfield=SaleStartAt"`
	Description string          `json:"description"`
}

type CreateEventRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	CategoryID  uint              `json:"category_id" validate:"required"`
	StartAt     time.Time         `json:"start_at" validate:"required"`
	EndAt       time.Time         `json:"end_at" validate:"required,gtfield=StartAt"`
	Location    string            `json:"location"`
	Capacity    int               `json:"capacity" validate:"required,gt=0"`
	TicketTypes []TicketTypeInput `json:"ticket_types"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	CategoryID  *uint      `json:"category_id,omitempty"`
}

type RejectEventRequest struct {
	Reason string `json:"reason"`
}

type PurchaseRequest struct {
	TicketTypeID  uint            `json:"ticket_type_id" validate:"required"`
	Quantity      int             `json:"quantity" validate:"required,gt=0"`
	TotalAmount   decimal.Decimal `json:"total_amount" validate:"gte=0"`
	PaymentMethod string          `json:"payment_method"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

type RefundRequest struct {
	TicketID uint   `json:"ticket_id" validate:"required"`
	Reason   string `json:"reason"`
}

type CreateAnnouncementRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type SetFeaturedRequest struct {
	Featured bool `json:"featured"`
}
