package model

// Tenant is the platform-level registry of tenants. It is the one shared
// table in the schema: rows here are not themselves tenant-owned.
type Tenant struct {
	AutoTimeModel

	ID     string       `gorm:"type:varchar(64);primaryKey"`
	Name   string       `gorm:"type:varchar(255);not null"`
	Status TenantStatus `gorm:"type:varchar(50);not null"`
}

func (Tenant) TableName() string   { return "tenants" }
func (Tenant) IsSharedModel() bool { return true }

type TenantStatus string

const (
	TenantActive    TenantStatus = "ACTIVE"
	TenantSuspended TenantStatus = "SUSPENDED"
	TenantClosed    TenantStatus = "CLOSED"
)
