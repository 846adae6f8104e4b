package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketType struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	EventID     uint            `gorm:"not null;index" json:"event_id"`
	Name        string          `gorm:"not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Sold        int             `gorm:"not null;default:0" json:"sold"`
	SaleStartAt time.Time       `gorm:"not null" json:"sale_start_at"`
	SaleEndAt   time.Time       `gorm:"not null" json:"sale_end_at"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// Available is the derived remaining stock; it is never stored.
func (t *TicketType) Available() int {
	return t.Quantity - t.Sold
}

// SaleOpen reports whether the sale window contains the given instant.
func (t *TicketType) SaleOpen(now time.Time) bool {
	return !now.Before(t.SaleStartAt) && !now.After(t.SaleEndAt)
}

type TicketStatus string

const (
	TicketValid     TicketStatus = "valid"
	TicketUsed      TicketStatus = "used"
	TicketRefunded  TicketStatus = "refunded"
	TicketCancelled TicketStatus = "cancelled"
)

type Ticket struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        string          `gorm:"not null;index" json:"user_id"`
	EventID       uint            `gorm:"not null;index" json:"event_id"`
	TicketTypeID  uint            `gorm:"not null;index" json:"ticket_type_id"`
	TransactionID uint            `gorm:"not null;index" json:"transaction_id"`
	Code          string          `gorm:"uniqueIndex;not null" json:"code"`
	Status        TicketStatus    `gorm:"type:varchar(20);not null;default:'valid'" json:"status"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	PurchasedAt   time.Time       `gorm:"not null" json:"purchased_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	TicketType *TicketType `gorm:"foreignKey:TicketTypeID" json:"ticket_type,omitempty"`
}

type AttendeeStatus string

const (
	AttendeeRegistered AttendeeStatus = "registered"
	AttendeeCheckedIn  AttendeeStatus = "checked_in"
	AttendeeNoShow     AttendeeStatus = "no_show"
)

type Attendee struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      string         `gorm:"not null;index:idx_attendee_user_event" json:"user_id"`
	EventID     uint           `gorm:"not null;index:idx_attendee_user_event" json:"event_id"`
	TicketID    uint           `gorm:"not null;uniqueIndex" json:"ticket_id"`
	Status      AttendeeStatus `gorm:"type:varchar(20);not null;default:'registered'" json:"status"`
	CheckedInAt *time.Time     `json:"checked_in_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Ticket *Ticket `gorm:"foreignKey:TicketID" json:"ticket,omitempty"`
}
