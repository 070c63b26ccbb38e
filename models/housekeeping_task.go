package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
	TaskStatusDelayed    = "Delayed"
)

const (
	TaskPriorityLow       = "Low"
	TaskPriorityMedium    = "Medium"
	TaskPriorityHigh      = "High"
	TaskPriorityEmergency = "Emergency"
)

// TaskTypeCheckoutClean is the task the booking engine emits on checkout,
// one per vacated room.
const TaskTypeCheckoutClean = "Checkout Clean"

var taskPriorities = map[string]bool{
	TaskPriorityLow:       true,
	TaskPriorityMedium:    true,
	TaskPriorityHigh:      true,
	TaskPriorityEmergency: true,
}

func IsValidTaskPriority(priority string) bool {
	return taskPriorities[priority]
}

type HousekeepingTask struct {
	gorm.Model

	TenantID  string `json:"tenantId" gorm:"column:tenant_id;size:64;index"`
	Reference string `json:"reference" gorm:"size:64;uniqueIndex"`

	RoomID uint `json:"roomId" gorm:"column:room_id;index"`

	Type     string `json:"type" gorm:"size:64"`
	Priority string `json:"priority" gorm:"size:32"`

	// Free text; there is no staff entity to reference.
	StaffName string `json:"staffName,omitempty" gorm:"column:staff_name;type:varchar(100)"`

	Status string `json:"status" gorm:"size:32;index"`

	// Notes carry the originating check-in number for checkout cleans.
	Notes string `json:"notes,omitempty" gorm:"type:text"`

	StartedAt   *time.Time `json:"startedAt,omitempty" gorm:"column:started_at"`
	CompletedAt *time.Time `json:"completedAt,omitempty" gorm:"column:completed_at"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

func (t *HousekeepingTask) BeforeCreate(tx *gorm.DB) error {
	if t.Reference == "" {
		t.Reference = uuid.NewString()
	}
	return nil
}
