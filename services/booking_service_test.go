package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hotel-core/models"
)

const tenant = "tenant-a"

func newBookingFixture(t *testing.T) (*BookingService, *HousekeepingService, []models.Room, models.Customer) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewBookingService(db, testLogger())
	hk := NewHousekeepingService(db, testLogger())
	rooms := []models.Room{
		mustCreateRoom(t, db, tenant, "101", 100),
		mustCreateRoom(t, db, tenant, "102", 200),
	}
	cust := mustCreateCustomer(t, db, tenant, "Ada Wong")
	return svc, hk, rooms, cust
}

func TestCreateGroupBooking_OneRowPerRoom(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID:   cust.ID,
		RoomIDs:      []uint{rooms[0].ID, rooms[1].ID},
		CheckInDate:  day(1),
		NumberOfDays: 2,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	number := rows[0].CheckInNumber
	assert.NotEmpty(t, number)
	for _, row := range rows {
		assert.Equal(t, number, row.CheckInNumber)
		assert.Equal(t, models.BookingStatusConfirmed, row.Status)
		assert.Equal(t, models.PaymentStatusPending, row.PaymentStatus)
		assert.NotEmpty(t, row.ReferenceCode)
		assert.Equal(t, day(3), row.CheckOutDate.UTC())
	}
	assert.Equal(t, 200.0, rows[0].RoomRent)
	assert.Equal(t, 400.0, rows[1].RoomRent)
	assert.Equal(t, 600.0, models.GroupTotal(rows))

	// Confirmed is not occupied: room status untouched.
	assert.Equal(t, models.RoomStatusAvailable, roomStatus(t, svc.DB, rooms[0].ID))
	assert.Equal(t, models.RoomStatusAvailable, roomStatus(t, svc.DB, rooms[1].ID))
}

func TestCreateGroupBooking_Validation(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	tests := []struct {
		name string
		in   GroupBookingInput
	}{
		{"no customer", GroupBookingInput{RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 1}},
		{"no rooms", GroupBookingInput{CustomerID: cust.ID, CheckInDate: day(1), NumberOfDays: 1}},
		{"duplicate room", GroupBookingInput{CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID, rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 1}},
		{"zero days", GroupBookingInput{CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 0}},
		{"negative advance", GroupBookingInput{CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 1, AdvanceAmount: -5}},
		{"advance above total", GroupBookingInput{CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 1, AdvanceAmount: 10000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGroupBooking(tenant, tt.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: 9999, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 1,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{9999}, CheckInDate: day(1), NumberOfDays: 1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateGroupBooking_OverlapRejectsWholeGroup(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	// Existing booking holds room 101 for [day2, day4).
	_, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(2), NumberOfDays: 2,
	})
	require.NoError(t, err)

	// [day1, day3) overlaps on 101; the sibling row for 102 must not appear.
	_, err = svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID, rooms[1].ID}, CheckInDate: day(1), NumberOfDays: 2,
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	var total, forSibling int64
	require.NoError(t, svc.DB.Model(&models.Booking{}).Where("tenant_id = ?", tenant).Count(&total).Error)
	require.NoError(t, svc.DB.Model(&models.Booking{}).
		Where("tenant_id = ? AND room_id = ?", tenant, rooms[1].ID).Count(&forSibling).Error)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(0), forSibling)
}

func TestCreateGroupBooking_AdjacentRangesBothSucceed(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	_, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 1,
	})
	require.NoError(t, err)

	// Same-day turnover: checkout day equals next check-in day.
	_, err = svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(2), NumberOfDays: 1,
	})
	assert.NoError(t, err)
}

func TestGroupLifecycle(t *testing.T) {
	svc, hk, rooms, cust := newBookingFixture(t)

	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID, rooms[1].ID}, CheckInDate: day(1), NumberOfDays: 2,
	})
	require.NoError(t, err)
	number := rows[0].CheckInNumber

	// Check-in flips every row and both rooms.
	rows, err = svc.CheckIn(tenant, number)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, models.BookingStatusCheckedIn, row.Status)
		assert.NotNil(t, row.CheckedInAt)
	}
	assert.Equal(t, models.RoomStatusOccupied, roomStatus(t, svc.DB, rooms[0].ID))
	assert.Equal(t, models.RoomStatusOccupied, roomStatus(t, svc.DB, rooms[1].ID))

	// Re-invoking check-in is a no-op success.
	_, err = svc.CheckIn(tenant, number)
	assert.NoError(t, err)

	// Check-out flips rows and rooms and creates exactly one task per room.
	rows, tasks, err := svc.CheckOut(tenant, number)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, models.BookingStatusCheckedOut, row.Status)
		assert.NotNil(t, row.CheckedOutAt)
	}
	assert.Equal(t, models.RoomStatusDirty, roomStatus(t, svc.DB, rooms[0].ID))
	assert.Equal(t, models.RoomStatusDirty, roomStatus(t, svc.DB, rooms[1].ID))
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, models.TaskTypeCheckoutClean, task.Type)
		assert.Equal(t, models.TaskPriorityMedium, task.Priority)
		assert.Equal(t, models.TaskStatusPending, task.Status)
		assert.Contains(t, task.Notes, number)
	}

	// Re-invoking check-out creates no extra tasks.
	_, _, err = svc.CheckOut(tenant, number)
	assert.NoError(t, err)
	var taskCount int64
	require.NoError(t, svc.DB.Model(&models.HousekeepingTask{}).Where("tenant_id = ?", tenant).Count(&taskCount).Error)
	assert.Equal(t, int64(2), taskCount)

	// Completing one task returns its room to service; the other stays Dirty.
	task := tasks[0]
	_, err = hk.UpdateStatus(tenant, task.ID, models.TaskStatusInProgress, "Maria")
	require.NoError(t, err)
	_, err = hk.UpdateStatus(tenant, task.ID, models.TaskStatusCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusAvailable, roomStatus(t, svc.DB, task.RoomID))
	other := tasks[1]
	assert.Equal(t, models.RoomStatusDirty, roomStatus(t, svc.DB, other.RoomID))
}

func TestCheckIn_NoEligibleRows(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 1,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(tenant, rows[0].ID)
	require.NoError(t, err)

	_, err = svc.CheckIn(tenant, rows[0].CheckInNumber)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, _, err = svc.CheckOut(tenant, rows[0].CheckInNumber)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelAndNoShow_OnlyFromConfirmed(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID, rooms[1].ID}, CheckInDate: day(1), NumberOfDays: 1,
	})
	require.NoError(t, err)

	// One room of the group can be dropped independently.
	cancelled, err := svc.Cancel(tenant, rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, models.RoomStatusAvailable, roomStatus(t, svc.DB, cancelled.RoomID))

	// Sibling row is untouched and the group still checks in.
	remaining, err := svc.GroupByNumber(tenant, rows[0].CheckInNumber)
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	_, err = svc.Cancel(tenant, rows[0].ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	checked, err := svc.CheckIn(tenant, rows[0].CheckInNumber)
	require.NoError(t, err)
	for _, row := range checked {
		if row.ID == rows[0].ID {
			assert.Equal(t, models.BookingStatusCancelled, row.Status)
		} else {
			assert.Equal(t, models.BookingStatusCheckedIn, row.Status)
		}
	}
	// Cancelled row's room was never claimed.
	assert.Equal(t, models.RoomStatusAvailable, roomStatus(t, svc.DB, rows[0].RoomID))

	_, err = svc.NoShow(tenant, rows[1].ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdvanceApportionment(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID, rooms[1].ID},
		CheckInDate: day(1), NumberOfDays: 2, AdvanceAmount: 300,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Rents are 200 and 400; shares follow proportionally and sum exactly.
	assert.InDelta(t, 100.0, rows[0].AdvanceAmount, 1e-9)
	assert.InDelta(t, 200.0, rows[1].AdvanceAmount, 1e-9)
	assert.InDelta(t, 300.0, rows[0].AdvanceAmount+rows[1].AdvanceAmount, 1e-9)
	for _, row := range rows {
		assert.Equal(t, models.PaymentStatusPartial, row.PaymentStatus)
	}
}

func TestAdvanceCoveringTotalIsPaid(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 2, AdvanceAmount: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, rows[0].PaymentStatus)
}

func TestUpdatePaymentStatus_IndependentAxis(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 1,
	})
	require.NoError(t, err)

	row, err := svc.UpdatePaymentStatus(tenant, rows[0].ID, models.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, row.PaymentStatus)
	assert.Equal(t, models.BookingStatusConfirmed, row.Status)

	_, err = svc.UpdatePaymentStatus(tenant, rows[0].ID, "Settled")
	assert.ErrorIs(t, err, ErrValidation)

	// Checkout succeeds regardless of payment completeness: flip back to
	// Pending and run the lifecycle.
	_, err = svc.UpdatePaymentStatus(tenant, rows[0].ID, models.PaymentStatusPending)
	require.NoError(t, err)
	_, err = svc.CheckIn(tenant, rows[0].CheckInNumber)
	require.NoError(t, err)
	_, _, err = svc.CheckOut(tenant, rows[0].CheckInNumber)
	assert.NoError(t, err)
}

func TestResolveCheckInNumber(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID, rooms[1].ID}, CheckInDate: day(1), NumberOfDays: 1,
	})
	require.NoError(t, err)

	// Either row id resolves to the same group.
	for _, row := range rows {
		number, err := svc.ResolveCheckInNumber(tenant, row.ID)
		require.NoError(t, err)
		assert.Equal(t, rows[0].CheckInNumber, number)
	}

	_, err = svc.ResolveCheckInNumber(tenant, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookings_TenantIsolation(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	_, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID: cust.ID, RoomIDs: []uint{rooms[0].ID}, CheckInDate: day(1), NumberOfDays: 1,
	})
	require.NoError(t, err)

	other, err := svc.GetAllWithRelations("tenant-b")
	require.NoError(t, err)
	assert.Empty(t, other)

	// A room with the same dates in another tenant does not collide.
	roomB := mustCreateRoom(t, svc.DB, "tenant-b", "101", 100)
	custB := mustCreateCustomer(t, svc.DB, "tenant-b", "Leon Kennedy")
	_, err = svc.CreateGroupBooking("tenant-b", GroupBookingInput{
		CustomerID: custB.ID, RoomIDs: []uint{roomB.ID}, CheckInDate: day(1), NumberOfDays: 1,
	})
	assert.NoError(t, err)
}

func TestGroupByNumber_ForgivesSpelling(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID:   cust.ID,
		RoomIDs:      []uint{rooms[0].ID},
		CheckInDate:  day(1),
		NumberOfDays: 1,
	})
	require.NoError(t, err)
	number := rows[0].CheckInNumber

	// Lowercase, hyphen-free spelling resolves to the same group.
	sloppy := strings.ToLower(strings.ReplaceAll(number, "-", ""))
	got, err := svc.GroupByNumber(tenant, sloppy)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rows[0].ID, got[0].ID)

	checked, err := svc.CheckIn(tenant, sloppy)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCheckedIn, checked[0].Status)

	_, err = svc.GroupByNumber(tenant, "not a code")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateGroupBooking_PartyDetailStored(t *testing.T) {
	svc, _, rooms, cust := newBookingFixture(t)

	detail := datatypes.JSON([]byte(`{"adults":2,"children":1}`))
	rows, err := svc.CreateGroupBooking(tenant, GroupBookingInput{
		CustomerID:   cust.ID,
		RoomIDs:      []uint{rooms[0].ID},
		CheckInDate:  day(1),
		NumberOfDays: 1,
		PartySize:    3,
		PartyDetail:  detail,
	})
	require.NoError(t, err)

	got, err := svc.GroupByNumber(tenant, rows[0].CheckInNumber)
	require.NoError(t, err)
	assert.JSONEq(t, `{"adults":2,"children":1}`, string(got[0].PartyDetail))
	assert.Equal(t, 3, got[0].PartySize)
}
