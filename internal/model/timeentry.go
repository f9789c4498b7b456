package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry records time worked against a task, feeding payroll.
type TimeEntry struct {
	AutoTimeModel
	TenantOwned

	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	StartedAt time.Time `gorm:"not null"`
	Minutes   int       `gorm:"not null"`
}

func (TimeEntry) TableName() string { return "time_entries" }
