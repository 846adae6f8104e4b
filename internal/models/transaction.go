package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction is one payment; a single transaction can cover several tickets
// bought together.
type Transaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	UserID        string            `gorm:"not null;index" json:"user_id"`
	EventID       uint              `gorm:"not null;index" json:"event_id"`
	Amount        decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status        TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentMethod string            `gorm:"type:varchar(30)" json:"payment_method"`
	GatewayRef    string            `json:"gateway_ref,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Tickets []Ticket `gorm:"foreignKey:TransactionID" json:"tickets,omitempty"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_review_user_event" json:"user_id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_review_user_event" json:"event_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefundStatus string

const (
	RefundPending   RefundStatus = "pending"
	RefundApproved  RefundStatus = "approved"
	RefundRejected  RefundStatus = "rejected"
	RefundProcessed RefundStatus = "processed"
)

type Refund struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        string          `gorm:"not null;index" json:"user_id"`
	EventID       uint            `gorm:"not null;index" json:"event_id"`
	TicketID      uint            `gorm:"not null;index" json:"ticket_id"`
	TransactionID uint            `gorm:"not null;index" json:"transaction_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Reason        string          `gorm:"type:text" json:"reason"`
	Status        RefundStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Announcement struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	EventID   uint       `gorm:"not null;index" json:"event_id"`
	CreatedBy string     `gorm:"not null" json:"created_by"`
	Title     string     `gorm:"not null" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
