// Package ticketcode issues opaque identifiers for tickets and payment
// references. Codes are uuid-backed so they are unique under concurrent
// issuance without any coordination.
package ticketcode

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique opaque codes.
type Generator interface {
	NewTicketCode() string
	NewGatewayRef() string
}

type uuidGenerator struct{}

// NewGenerator returns the default uuid-backed generator.
func NewGenerator() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewTicketCode() string {
	return fmt.Sprintf("TIX-%s", uuid.New().String())
}

func (uuidGenerator) NewGatewayRef() string {
	return fmt.Sprintf("PAY-%s", uuid.New().String())
}
