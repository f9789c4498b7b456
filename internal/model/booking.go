package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Booking references its client through the composite key
// (client_id, tenant_id), so a booking can never point at another
// tenant's client even if application code mis-stamps the row.
type Booking struct {
	AutoTimeModel
	TenantOwned

	ID       uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ClientID uuid.UUID     `gorm:"type:uuid;not null"`
	Status   BookingStatus `gorm:"type:varchar(50);not null"`
	StartsAt time.Time     `gorm:"not null"`
	EndsAt   time.Time     `gorm:"not null"`
	Notes    string        `gorm:"type:text;not null;default:''"`
}

func (Booking) TableName() string { return "bookings" }
