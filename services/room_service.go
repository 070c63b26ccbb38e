package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-core/models"
)

// RoomService is the room registry: room records, their status, and the
// availability primitive the booking engine builds on. SetStatus is a dumb
// write on purpose; all booking-state validation lives in BookingService.
type RoomService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewRoomService(db *gorm.DB, log *zap.Logger) *RoomService {
	return &RoomService{DB: db, Log: log}
}

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

func (s *RoomService) Create(tenantID string, room models.Room) (models.Room, error) {
	room.TenantID = tenantID
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)

	if room.RoomNumber == "" {
		return room, fmt.Errorf("%w: room number is required", ErrValidation)
	}
	if room.PricePerNight < 0 {
		return room, fmt.Errorf("%w: price per night must not be negative", ErrValidation)
	}
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	if !models.IsValidRoomStatus(room.Status) {
		return room, fmt.Errorf("%w: unknown room status %q", ErrValidation, room.Status)
	}
	if room.RoomTypeID != nil {
		var rt models.RoomType
		if err := s.DB.Where("id = ? AND tenant_id = ?", *room.RoomTypeID, tenantID).First(&rt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return room, fmt.Errorf("%w: room type %d", ErrNotFound, *room.RoomTypeID)
			}
			return room, err
		}
		if room.Type == "" {
			room.Type = rt.TypeName
		}
	}

	var count int64
	if err := s.DB.Model(&models.Room{}).
		Where("tenant_id = ? AND room_number = ?", tenantID, room.RoomNumber).
		Count(&count).Error; err != nil {
		return room, err
	}
	if count > 0 {
		return room, fmt.Errorf("%w: room number %q already exists", ErrConflict, room.RoomNumber)
	}

	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateErr(err) {
			return room, fmt.Errorf("%w: room number %q already exists", ErrConflict, room.RoomNumber)
		}
		return room, err
	}
	return room, nil
}

func (s *RoomService) GetAll(tenantID, status string) ([]models.Room, error) {
	q := s.DB.Preload("RoomType").Where("tenant_id = ?", tenantID).Order("room_number")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rooms []models.Room
	err := q.Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(tenantID string, id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.Preload("RoomType").Where("tenant_id = ?", tenantID).First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return room, fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	return room, err
}

// Update applies a partial field update. Identity and bookkeeping columns
// are stripped; a room number change re-checks tenant uniqueness.
func (s *RoomService) Update(tenantID string, id uint, updates map[string]interface{}) (models.Room, error) {
	room, err := s.GetByID(tenantID, id)
	if err != nil {
		return room, err
	}

	for _, k := range []string{"id", "tenant_id", "tenantId", "created_at", "updated_at", "deleted_at"} {
		delete(updates, k)
	}

	if raw, ok := updates["roomNumber"]; ok {
		updates["room_number"] = raw
		delete(updates, "roomNumber")
	}
	if raw, ok := updates["room_number"]; ok {
		number := strings.TrimSpace(fmt.Sprintf("%v", raw))
		if number == "" {
			return room, fmt.Errorf("%w: room number is required", ErrValidation)
		}
		var count int64
		if err := s.DB.Model(&models.Room{}).
			Where("tenant_id = ? AND room_number = ? AND id <> ?", tenantID, number, id).
			Count(&count).Error; err != nil {
			return room, err
		}
		if count > 0 {
			return room, fmt.Errorf("%w: room number %q already exists", ErrConflict, number)
		}
		updates["room_number"] = number
	}
	if raw, ok := updates["pricePerNight"]; ok {
		updates["price_per_night"] = raw
		delete(updates, "pricePerNight")
	}
	if raw, ok := updates["status"]; ok {
		status := fmt.Sprintf("%v", raw)
		if !models.IsValidRoomStatus(status) {
			return room, fmt.Errorf("%w: unknown room status %q", ErrValidation, status)
		}
	}

	if err := s.DB.Model(&models.Room{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error; err != nil {
		if isDuplicateErr(err) {
			return room, fmt.Errorf("%w: duplicate room number", ErrConflict)
		}
		return room, err
	}
	return s.GetByID(tenantID, id)
}

// SetStatus unconditionally sets the room status. Manual overrides and the
// booking/housekeeping engines all funnel through here; invariant
// preservation is the caller's job.
func (s *RoomService) SetStatus(tenantID string, roomID uint, status string) error {
	if !models.IsValidRoomStatus(status) {
		return fmt.Errorf("%w: unknown room status %q", ErrValidation, status)
	}
	res := s.DB.Model(&models.Room{}).
		Where("tenant_id = ? AND id = ?", tenantID, roomID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d", ErrNotFound, roomID)
	}
	s.Log.Info("room status set",
		zap.String("tenant", tenantID),
		zap.Uint("room", roomID),
		zap.String("status", status))
	return nil
}

// IsAvailableForRange reports whether no active booking overlaps the
// half-open interval [checkIn, checkOut) for the room. A checkout and a
// check-in on the same calendar day therefore do not collide.
func (s *RoomService) IsAvailableForRange(tenantID string, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	n, err := countOverlapping(s.DB, tenantID, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func countOverlapping(tx *gorm.DB, tenantID string, roomID uint, checkIn, checkOut time.Time) (int64, error) {
	var n int64
	err := tx.Model(&models.Booking{}).
		Where("tenant_id = ? AND room_id = ?", tenantID, roomID).
		Where("status IN ?", []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Count(&n).Error
	return n, err
}

// Delete soft-deletes a room. Rooms referenced by a non-terminal booking
// stay.
func (s *RoomService) Delete(tenantID string, id uint) error {
	if _, err := s.GetByID(tenantID, id); err != nil {
		return err
	}

	var active int64
	if err := s.DB.Model(&models.Booking{}).
		Where("tenant_id = ? AND room_id = ?", tenantID, id).
		Where("status IN ?", []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: room %d has active bookings", ErrConflict, id)
	}

	return s.DB.Where("tenant_id = ?", tenantID).Delete(&models.Room{}, id).Error
}
