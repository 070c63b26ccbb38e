package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomType is the tenant-configurable room category list. Rooms carry the
// type name denormalized for display plus the FK for management.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TenantID    string `json:"tenantId" gorm:"column:tenant_id;size:64;index;uniqueIndex:idx_tenant_type_name"`
	TypeName    string `json:"typeName" gorm:"uniqueIndex:idx_tenant_type_name;type:varchar(100)"`
	Description string `json:"description"`
	MaxGuests   uint   `json:"maxGuests"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
