package model

import (
	"time"

	"gorm.io/gorm"
)

type AutoTimeModel struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate ensures timestamps are set before creating a record
func (b *AutoTimeModel) BeforeCreate(_ *gorm.DB) error {
	now := time.Now().UTC()

	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}

	b.UpdatedAt = now

	return nil
}

// BeforeUpdate ensures UpdatedAt is set before updating a record
func (b *AutoTimeModel) BeforeUpdate(_ *gorm.DB) error {
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// TenantOwned is embedded by every model whose rows belong to one tenant.
// The tenant id is stamped from context by the repository on create and is
// immutable afterwards; it is part of every composite foreign key the schema
// defines between tenant-owned tables.
type TenantOwned struct {
	TenantID string `gorm:"type:varchar(64);not null;index"`
}

func (TenantOwned) IsSharedModel() bool { return false }

// StampTenant sets the owning tenant. Only the repository calls this, with
// the id taken from the active scope, never from request input.
func (o *TenantOwned) StampTenant(tenantID string) { o.TenantID = tenantID }

// OwnerTenantID reports the stamped tenant id.
func (o TenantOwned) OwnerTenantID() string { return o.TenantID }
