package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-core/models"
)

func seedBookingRow(t *testing.T, db *gorm.DB, tenantID string, roomID uint, rent float64, status string, in, out, createdAt time.Time) {
	t.Helper()
	row := models.Booking{
		TenantID:      tenantID,
		CheckInNumber: "SEED-0001",
		CustomerID:    mustCreateCustomer(t, db, tenantID, "Seed Guest").ID,
		RoomID:        roomID,
		CheckInDate:   in,
		CheckOutDate:  out,
		NumberOfDays:  int(out.Sub(in).Hours() / 24),
		RoomRent:      rent,
		Status:        status,
		PaymentStatus: models.PaymentStatusPending,
	}
	row.CreatedAt = createdAt
	require.NoError(t, db.Create(&row).Error)
}

func TestSummary_EmptyTenant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	sum, err := svc.Summary("tenant-a")
	require.NoError(t, err)
	assert.Zero(t, sum.TotalRooms)
	assert.Zero(t, sum.OccupancyRate)
	assert.Zero(t, sum.ADR)
	assert.Zero(t, sum.RevPAR)
}

func TestSummaryAt_Metrics(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	rooms := NewRoomService(db, testLogger())

	r1 := mustCreateRoom(t, db, "tenant-a", "101", 100)
	r2 := mustCreateRoom(t, db, "tenant-a", "102", 200)
	r3 := mustCreateRoom(t, db, "tenant-a", "103", 150)
	mustCreateRoom(t, db, "tenant-a", "104", 150)
	require.NoError(t, rooms.SetStatus("tenant-a", r1.ID, models.RoomStatusOccupied))
	require.NoError(t, rooms.SetStatus("tenant-a", r2.ID, models.RoomStatusOccupied))

	now := day(0).Add(14 * time.Hour)

	seedBookingRow(t, db, "tenant-a", r1.ID, 100, models.BookingStatusCheckedIn, day(0), day(2), day(0))
	seedBookingRow(t, db, "tenant-a", r2.ID, 200, models.BookingStatusConfirmed, day(0), day(1), day(0))
	// Cancelled today and arriving tomorrow both stay out of today's numbers.
	seedBookingRow(t, db, "tenant-a", r3.ID, 500, models.BookingStatusCancelled, day(0), day(1), day(0))
	seedBookingRow(t, db, "tenant-a", r3.ID, 150, models.BookingStatusConfirmed, day(1), day(2), day(0))

	sum, err := svc.SummaryAt("tenant-a", now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sum.TotalRooms)
	assert.Equal(t, int64(2), sum.OccupiedRooms)
	assert.InDelta(t, 50.0, sum.OccupancyRate, 0.001)
	assert.Equal(t, int64(2), sum.RoomsSoldToday)
	assert.InDelta(t, 300.0, sum.TotalRevenueToday, 0.001)
	assert.InDelta(t, 150.0, sum.ADR, 0.001)
	assert.InDelta(t, 75.0, sum.RevPAR, 0.001)
}

func TestTrendsAt_PerDayPoints(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	r1 := mustCreateRoom(t, db, "tenant-a", "101", 100)
	r2 := mustCreateRoom(t, db, "tenant-a", "102", 200)

	// r1 occupied on day -2 and day -1; the row was sold on day -2.
	seedBookingRow(t, db, "tenant-a", r1.ID, 100, models.BookingStatusCheckedOut, day(-2), day(0), day(-2))
	// r2 occupied only on day -1; its twin rows were sold on day -1.
	seedBookingRow(t, db, "tenant-a", r2.ID, 200, models.BookingStatusCheckedIn, day(-1), day(0), day(-1))
	// No-show rows never count toward occupancy but keep their revenue day.
	seedBookingRow(t, db, "tenant-a", r2.ID, 50, models.BookingStatusNoShow, day(-1), day(0), day(-1))

	now := day(0).Add(9 * time.Hour)

	var points []TrendPoint
	for p, err := range svc.TrendsAt("tenant-a", 3, now) {
		require.NoError(t, err)
		points = append(points, p)
	}
	require.Len(t, points, 3)

	assert.Equal(t, day(-2).Format("2006-01-02"), points[0].Date)
	assert.Equal(t, day(-1).Format("2006-01-02"), points[1].Date)
	assert.Equal(t, day(0).Format("2006-01-02"), points[2].Date)

	// Day -2: one of two rooms covered.
	assert.InDelta(t, 50.0, points[0].Occupancy, 0.001)
	assert.InDelta(t, 100.0, points[0].Revenue, 0.001)

	// Day -1: both rooms covered; revenue = 200 + 50 created that day.
	assert.InDelta(t, 100.0, points[1].Occupancy, 0.001)
	assert.InDelta(t, 250.0, points[1].Revenue, 0.001)

	// Day 0: check-out day is exclusive, nothing covers it.
	assert.Zero(t, points[2].Occupancy)
	assert.Zero(t, points[2].Revenue)
}

func TestTrends_WindowClamped(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	count := func(days int) int {
		n := 0
		for _, err := range svc.TrendsAt("tenant-a", days, day(0)) {
			require.NoError(t, err)
			n++
		}
		return n
	}

	assert.Equal(t, 7, count(0))
	assert.Equal(t, 90, count(500))
	assert.Equal(t, 1, count(1))
}

func TestTrends_StopsWhenConsumerBreaks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	n := 0
	for _, err := range svc.TrendsAt("tenant-a", 30, day(0)) {
		require.NoError(t, err)
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
