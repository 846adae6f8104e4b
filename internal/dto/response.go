package dto

import (
	"time"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/service"
	"github.com/shopspring/decimal"
)

type EventResponse struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description,omitempty"`
	CategoryID    uint               `json:"category_id"`
	StartAt       time.Time          `json:"start_at"`
	EndAt         time.Time          `json:"end_at"`
	Location      string             `json:"location,omitempty"`
	Capacity      int                `json:"capacity"`
	Status        models.EventStatus `json:"status"`
	Featured      bool               `json:"featured"`
	AverageRating *float64           `json:"average_rating,omitempty"`
	TicketTypes   []TicketTypeResponse `json:"ticket_types,omitempty"`
}

type TicketTypeResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Sold        int             `json:"sold"`
	Available   int             `json:"available"`
	SaleStartAt time.Time       `json:"sale_start_at"`
	SaleEndAt   time.Time       `json:"sale_end_at"`
	Description string          `json:"description,omitempty"`
}

type PurchaseResponse struct {
	TransactionID uint                     `json:"transaction_id"`
	Amount        decimal.Decimal          `json:"amount"`
	Status        models.TransactionStatus `json:"status"`
	TicketCodes   []string                 `json:"ticket_codes"`
	Tickets       []TicketResponse         `json:"tickets"`
}

type TicketResponse struct {
	ID          uint                `json:"id"`
	Code        string              `json:"code"`
	EventID     uint                `json:"event_id"`
	Status      models.TicketStatus `json:"status"`
	Price       decimal.Decimal     `json:"price"`
	PurchasedAt time.Time           `json:"purchased_at"`
}

type AttendeeResponse struct {
	ID          uint                  `json:"id"`
	UserID      string                `json:"user_id"`
	EventID     uint                  `json:"event_id"`
	TicketID    uint                  `json:"ticket_id"`
	Status      models.AttendeeStatus `json:"status"`
	CheckedInAt *time.Time            `json:"checked_in_at,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Slug:          e.Slug,
		Description:   e.Description,
		CategoryID:    e.CategoryID,
		StartAt:       e.StartAt,
		EndAt:         e.EndAt,
		Location:      e.Location,
		Capacity:      e.Capacity,
		Status:        e.Status,
		Featured:      e.Featured,
		AverageRating: e.AverageRating,
	}
	for i := range e.TicketTypes {
		resp.TicketTypes = append(resp.TicketTypes, ToTicketTypeResponse(&e.TicketTypes[i]))
	}
	return resp
}

func ToTicketTypeResponse(t *models.TicketType) TicketTypeResponse {
	return TicketTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Price:       t.Price,
		Quantity:    t.Quantity,
		Sold:        t.Sold,
		Available:   t.Available(),
		SaleStartAt: t.SaleStartAt,
		SaleEndAt:   t.SaleEndAt,
		Description: t.Description,
	}
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Code:        t.Code,
		EventID:     t.EventID,
		Status:      t.Status,
		Price:       t.Price,
		PurchasedAt: t.PurchasedAt,
	}
}

func ToPurchaseResponse(r *service.PurchaseResult) PurchaseResponse {
	resp := PurchaseResponse{
		TransactionID: r.Transaction.ID,
		Amount:        r.Transaction.Amount,
		Status:        r.Transaction.Status,
		TicketCodes:   r.TicketCodes,
	}
	for i := range r.Tickets {
		resp.Tickets = append(resp.Tickets, ToTicketResponse(&r.Tickets[i]))
	}
	return resp
}

func ToAttendeeResponse(a *models.Attendee) AttendeeResponse {
	return AttendeeResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		EventID:     a.EventID,
		TicketID:    a.TicketID,
		Status:      a.Status,
		CheckedInAt: a.CheckedInAt,
	}
}
