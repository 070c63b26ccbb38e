package models

import (
	"gorm.io/gorm"
)

// Room statuses. Status is mutated by the booking engine and by
// housekeeping; callers own the invariants (see services).
const (
	RoomStatusAvailable   = "Available"
	RoomStatusOccupied    = "Occupied"
	RoomStatusDirty       = "Dirty"
	RoomStatusMaintenance = "Maintenance"
	RoomStatusCleaning    = "Cleaning"
)

var roomStatuses = map[string]bool{
	RoomStatusAvailable:   true,
	RoomStatusOccupied:    true,
	RoomStatusDirty:       true,
	RoomStatusMaintenance: true,
	RoomStatusCleaning:    true,
}

func IsValidRoomStatus(status string) bool {
	return roomStatuses[status]
}

type Room struct {
	gorm.Model

	// Room numbers are unique per tenant, not globally.
	TenantID   string `json:"tenantId" gorm:"column:tenant_id;size:64;index;uniqueIndex:idx_tenant_room_number"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex:idx_tenant_room_number;type:varchar(50)"`

	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`
	Type       string `json:"type"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`
	Status     string `json:"status"`

	PricePerNight float64 `json:"pricePerNight" gorm:"column:price_per_night"`
	Description   string  `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
