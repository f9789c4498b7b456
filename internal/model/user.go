package model

import "github.com/google/uuid"

// User is a staff member account. Users are tenant-owned, but the email
// address is globally unique across tenants (see the users email uniqueness
// migrations; the constraint flipped between tenant-scoped and global and
// settled on global).
type User struct {
	AutoTimeModel
	TenantOwned

	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string    `gorm:"type:varchar(255);not null"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Role  string    `gorm:"type:varchar(50);not null"`
}

func (User) TableName() string { return "users" }
