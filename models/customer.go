package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model

	TenantID string `json:"tenantId" gorm:"column:tenant_id;size:64;index"`

	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone" gorm:"type:varchar(32)"`
	Address  string `json:"address" gorm:"type:text"`

	// Government-id fields; Documents holds scanned-document metadata as
	// sent by the front desk (free-form, never interpreted here).
	IDType    string         `json:"idType" gorm:"column:id_type;type:varchar(32)"`
	IDNumber  string         `json:"idNumber" gorm:"column:id_number;type:varchar(64)"`
	Documents datatypes.JSON `json:"documents,omitempty" gorm:"column:documents"`
}
