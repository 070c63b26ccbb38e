package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hotel-core/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled second connection would see a different empty :memory: db.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Customer{},
		&models.Agent{},
		&models.Booking{},
		&models.HousekeepingTask{},
		&models.InventoryItem{},
	))
	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func mustCreateRoom(t *testing.T, db *gorm.DB, tenantID, number string, price float64) models.Room {
	t.Helper()
	room := models.Room{
		TenantID:      tenantID,
		RoomNumber:    number,
		Type:          "Single",
		Floor:         "1",
		Status:        models.RoomStatusAvailable,
		PricePerNight: price,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func mustCreateCustomer(t *testing.T, db *gorm.DB, tenantID, name string) models.Customer {
	t.Helper()
	cust := models.Customer{TenantID: tenantID, FullName: name, Email: "guest@example.com"}
	require.NoError(t, db.Create(&cust).Error)
	return cust
}

func roomStatus(t *testing.T, db *gorm.DB, roomID uint) string {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, roomID).Error)
	return room.Status
}

// day returns midnight UTC offset days from a fixed base date.
func day(offset int) time.Time {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}
