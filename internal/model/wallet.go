package model

import "github.com/google/uuid"

// Wallet holds a client's prepaid balance.
type Wallet struct {
	AutoTimeModel
	TenantOwned

	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID     uuid.UUID `gorm:"type:uuid;not null"`
	BalanceCents int64     `gorm:"not null;default:0"`
	Currency     string    `gorm:"type:varchar(3);not null"`
}

func (Wallet) TableName() string { return "wallets" }
