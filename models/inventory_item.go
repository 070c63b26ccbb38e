package models

import (
	"gorm.io/gorm"
)

// InventoryItem is a stock-keeping record. LowStock is never stored: it is
// recomputed from Quantity and MinThreshold on every read.
type InventoryItem struct {
	gorm.Model

	TenantID string `json:"tenantId" gorm:"column:tenant_id;size:64;index"`

	Name     string `json:"name" gorm:"type:varchar(100)"`
	Category string `json:"category" gorm:"type:varchar(64)"`
	Unit     string `json:"unit" gorm:"type:varchar(32)"`

	Quantity     float64 `json:"quantity"`
	MinThreshold float64 `json:"minThreshold" gorm:"column:min_threshold"`

	// Derived on read, see InventoryService.
	LowStock bool `json:"lowStock" gorm:"-"`
}

func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinThreshold
}
