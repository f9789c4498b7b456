package reports

import (
	"fmt"

	"gorm.io/gorm"
)

func RevenueByClient(db *gorm.DB, clientName string) *gorm.DB {
	return db.Where(fmt.Sprintf("name = '%s'", clientName))
}

func ScopedRevenue(db *gorm.DB, alias string) *gorm.DB {
	return db.Where(fmt.Sprintf("%s.tenant_id = ?", alias), "t1").
		Where("invoices.tenant_id = ?", "t1")
}
