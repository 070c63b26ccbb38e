package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. Transitions are monotonic:
// Confirmed -> CheckedIn -> CheckedOut, Confirmed -> Cancelled,
// Confirmed -> NoShow. No edge re-enters Confirmed.
const (
	BookingStatusConfirmed  = "Confirmed"
	BookingStatusCheckedIn  = "CheckedIn"
	BookingStatusCheckedOut = "CheckedOut"
	BookingStatusCancelled  = "Cancelled"
	BookingStatusNoShow     = "NoShow"
)

// Payment statuses. Independent axis: checkout never requires payment
// completion.
const (
	PaymentStatusPending  = "Pending"
	PaymentStatusPartial  = "Partial"
	PaymentStatusPaid     = "Paid"
	PaymentStatusRefunded = "Refunded"
)

var paymentStatuses = map[string]bool{
	PaymentStatusPending:  true,
	PaymentStatusPartial:  true,
	PaymentStatusPaid:     true,
	PaymentStatusRefunded: true,
}

func IsValidPaymentStatus(status string) bool {
	return paymentStatuses[status]
}

// Booking is one room-row of a reservation. A group booking is the set of
// rows sharing one CheckInNumber; group actions (check-in, check-out) apply
// to every row under that number transactionally.
//
// Pricing is canonical per row: RoomRent and the row's AdvanceAmount share
// are stored, the group total is always a derived read-time sum (see
// GroupTotal) and never persisted.
type Booking struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TenantID      string `json:"tenantId" gorm:"column:tenant_id;size:64;index"`
	CheckInNumber string `json:"checkInNumber" gorm:"column:check_in_number;size:32;index"`
	ReferenceCode string `json:"referenceCode" gorm:"column:reference_code;size:64;uniqueIndex"`

	CustomerID uint  `json:"customerId" gorm:"column:customer_id;index"`
	RoomID     uint  `json:"roomId" gorm:"column:room_id;index"`
	AgentID    *uint `json:"agentId,omitempty" gorm:"column:agent_id"`

	CheckInDate  time.Time `json:"checkInDate" gorm:"column:check_in_date;index"`
	CheckOutDate time.Time `json:"checkOutDate" gorm:"column:check_out_date;index"`
	NumberOfDays int       `json:"numberOfDays" gorm:"column:number_of_days"`

	ServiceType string         `json:"serviceType,omitempty" gorm:"column:service_type;size:64"`
	CheckInType string         `json:"checkInType,omitempty" gorm:"column:check_in_type;size:64"`
	PartySize   int            `json:"partySize" gorm:"column:party_size;default:1"`
	PartyDetail datatypes.JSON `json:"partyDetail,omitempty" gorm:"column:party_detail"`

	RoomRent      float64 `json:"roomRent" gorm:"column:room_rent"`
	AdvanceAmount float64 `json:"advanceAmount" gorm:"column:advance_amount"`

	Status        string `json:"status" gorm:"size:32;index"`
	PaymentStatus string `json:"paymentStatus" gorm:"column:payment_status;size:32"`

	CheckedInAt  *time.Time `json:"checkedInAt,omitempty" gorm:"column:checked_in_at"`
	CheckedOutAt *time.Time `json:"checkedOutAt,omitempty" gorm:"column:checked_out_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Room     Room     `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Agent    *Agent   `gorm:"foreignKey:AgentID;references:ID" json:"agent,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ReferenceCode == "" {
		b.ReferenceCode = uuid.NewString()
	}
	return nil
}

// Active reports whether the row still holds its room (counts against
// availability).
func (b *Booking) Active() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusCheckedIn
}

// GroupTotal is the derived group amount: the sum of per-row rents.
func GroupTotal(rows []Booking) float64 {
	var total float64
	for _, r := range rows {
		total += r.RoomRent
	}
	return total
}
