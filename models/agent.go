package models

import (
	"gorm.io/gorm"
)

// Agent is a referral/booking-channel entity. Purely referential: bookings
// may point at one, nothing in the engine mutates it.
type Agent struct {
	gorm.Model

	TenantID string `json:"tenantId" gorm:"column:tenant_id;size:64;index"`

	Name              string  `json:"name"`
	Phone             string  `json:"phone" gorm:"type:varchar(32)"`
	Email             string  `json:"email"`
	CommissionPercent float64 `json:"commissionPercent" gorm:"column:commission_percent"`
}
