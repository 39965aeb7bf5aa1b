package domain

import (
	"time"

	"github.com/google/uuid"
)

// StylistService is a service a stylist offers, with the stylist's own
// price and duration. ServiceOriginUUID links a customized service back
// to the template it was created from; services customized beyond
// recognition get a freshly generated origin.
type StylistService struct {
	ID        int64
	UUID      uuid.UUID
	StylistID int64

	Name            string
	Description     string
	BasePrice       float64
	DurationMinutes int
	IsEnabled       bool

	ServiceOriginUUID uuid.UUID

	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted returns true if the service has been soft-deleted
func (s *StylistService) IsDeleted() bool {
	return s.DeletedAt != nil
}

// ServiceTemplate is a predefined service description stylists build
// their catalog from
type ServiceTemplate struct {
	UUID            uuid.UUID
	Name            string
	BasePrice       float64
	DurationMinutes int
}

// Matches reports whether a stylist service still corresponds to this
// template (same name and price, i.e. not customized)
func (t *ServiceTemplate) Matches(name string, basePrice float64) bool {
	return t.Name == name && t.BasePrice == basePrice
}
