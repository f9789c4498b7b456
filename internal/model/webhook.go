package model

import (
	"time"

	"github.com/google/uuid"
)

// Webhook is a tenant-configured outbound notification endpoint.
type Webhook struct {
	AutoTimeModel
	TenantOwned

	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	URL     string    `gorm:"type:varchar(2048);not null"`
	Event   string    `gorm:"type:varchar(100);not null"`
	Enabled bool      `gorm:"not null;default:true"`
}

func (Webhook) TableName() string { return "webhooks" }

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

type WebhookDelivery struct {
	AutoTimeModel
	TenantOwned

	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	WebhookID   uuid.UUID      `gorm:"type:uuid;not null"`
	Status      DeliveryStatus `gorm:"type:varchar(50);not null"`
	Attempts    int            `gorm:"not null;default:0"`
	DeliveredAt *time.Time     `gorm:""`
	Payload     string         `gorm:"type:text;not null;default:''"`
}

func (WebhookDelivery) TableName() string { return "webhook_deliveries" }
