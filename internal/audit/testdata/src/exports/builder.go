package exports

import (
	"gorm.io/gorm"
)

type Row struct {
	ID string
}

func TenantBookings(db *gorm.DB, tenantID string) ([]Row, error) {
	var rows []Row

	err := db.Raw(
		"SELECT id FROM bookings WHERE tenant_id = ?",
		tenantID,
	).Scan(&rows).Error

	return rows, err
}

func bookingCount(db *gorm.DB) (int64, error) {
	var count int64

	err := db.Table("bookings").Count(&count).Error

	return count, err
}

func AllBookings(db *gorm.DB) ([]Row, error) {
	var rows []Row

	err := db.Raw("SELECT id FROM bookings").Scan(&rows).Error

	return rows, err
}
