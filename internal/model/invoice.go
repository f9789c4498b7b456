package model

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "DRAFT"
	InvoiceSent  InvoiceStatus = "SENT"
	InvoicePaid  InvoiceStatus = "PAID"
	InvoiceVoid  InvoiceStatus = "VOID"
)

type Invoice struct {
	AutoTimeModel
	TenantOwned

	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	BookingID   uuid.UUID     `gorm:"type:uuid;not null"`
	Status      InvoiceStatus `gorm:"type:varchar(50);not null"`
	AmountCents int64         `gorm:"not null"`
	Currency    string        `gorm:"type:varchar(3);not null"`
	DueAt       time.Time     `gorm:"not null"`
}

func (Invoice) TableName() string { return "invoices" }
