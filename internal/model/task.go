package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	AutoTimeModel
	TenantOwned

	ID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title   string     `gorm:"type:varchar(255);not null"`
	Done    bool       `gorm:"not null;default:false"`
	DueAt   *time.Time `gorm:""`
	Details string     `gorm:"type:text;not null;default:''"`
}

func (Task) TableName() string { return "tasks" }

// TaskAssignee links staff to tasks. Both edges are composite
// ((task_id, tenant_id) and (user_id, tenant_id)), so an assignment row is
// structurally pinned to one tenant on both sides.
type TaskAssignee struct {
	AutoTimeModel
	TenantOwned

	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID uuid.UUID `gorm:"type:uuid;not null"`
	UserID uuid.UUID `gorm:"type:uuid;not null"`
}

func (TaskAssignee) TableName() string { return "task_assignees" }
