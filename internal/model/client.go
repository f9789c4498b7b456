package model

import "github.com/google/uuid"

// Client is a customer of a tenant's business.
type Client struct {
	AutoTimeModel
	TenantOwned

	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Email string    `gorm:"type:varchar(255);not null;default:''"`
	Phone string    `gorm:"type:varchar(50);not null;default:''"`
}

func (Client) TableName() string { return "clients" }
