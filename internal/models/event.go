package models

import (
	"time"

	"gorm.io/gorm"
)

type EventStatus string

const (
	EventDraft           EventStatus = "draft"
	EventPendingApproval EventStatus = "pending_approval"
	EventApproved        EventStatus = "approved"
	EventLive            EventStatus = "live"
	EventCompleted       EventStatus = "completed"
	EventCancelled       EventStatus = "cancelled"
	EventRejected        EventStatus = "rejected"
)

// eventTransitions is the full set of legal status changes. Anything not
// listed here is rejected, including approving an already-rejected event.
var eventTransitions = map[EventStatus][]EventStatus{
	EventDraft:           {EventPendingApproval},
	EventPendingApproval: {EventApproved, EventRejected},
	EventApproved:        {EventLive, EventCancelled},
	EventLive:            {EventCompleted, EventCancelled},
}

// CanTransition reports whether an event in status `from` may move to `to`.
func CanTransition(from, to EventStatus) bool {
	for _, next := range eventTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsPubliclyVisible reports whether the event shows up on public surfaces.
// Approved and live are equivalent for discoverability.
func (s EventStatus) IsPubliclyVisible() bool {
	return s == EventApproved || s == EventLive
}

type Event struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	StartAt       time.Time      `gorm:"not null" json:"start_at"`
	EndAt         time.Time      `gorm:"not null" json:"end_at"`
	Location      string         `json:"location"`
	Capacity      int            `gorm:"not null" json:"capacity"`
	Status        EventStatus    `gorm:"type:varchar(20);not null;default:'pending_approval';index" json:"status"`
	Featured      bool           `gorm:"not null;default:false" json:"featured"`
	AverageRating *float64       `json:"average_rating,omitempty"`
	RejectReason  string         `json:"reject_reason,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Category    *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	TicketTypes []TicketType     `gorm:"foreignKey:EventID" json:"ticket_types,omitempty"`
	Organizers  []EventOrganizer `gorm:"foreignKey:EventID" json:"-"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventOrganizer links a user to an event they manage. Organizer rights are
// per-event; platform admins are a separate role carried on the auth token.
type EventOrganizer struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID uint   `gorm:"not null;uniqueIndex:idx_event_organizer" json:"event_id"`
	UserID  string `gorm:"not null;uniqueIndex:idx_event_organizer" json:"user_id"`
	Role    string `gorm:"type:varchar(20);not null;default:'organizer'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
}
