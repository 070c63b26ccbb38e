package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-core/models"
	"hotel-core/utils"
)

// BookingService is the booking engine: it owns the reservation state
// machine and drives room status and housekeeping task creation as side
// effects of group transitions. Group mutations run inside one transaction
// with the affected room rows locked in ascending id order, so two
// concurrent group bookings cannot both pass the availability check for the
// same room and range.
type BookingService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewBookingService(db *gorm.DB, log *zap.Logger) *BookingService {
	return &BookingService{DB: db, Log: log}
}

// GroupBookingInput is one reservation request covering one or more rooms.
type GroupBookingInput struct {
	CustomerID    uint
	RoomIDs       []uint
	CheckInDate   time.Time
	NumberOfDays  int
	ServiceType   string
	CheckInType   string
	PartySize     int
	PartyDetail   datatypes.JSON
	AgentID       *uint
	AdvanceAmount float64
}

func (in *GroupBookingInput) validate() error {
	if in.CustomerID == 0 {
		return fmt.Errorf("%w: customer is required", ErrValidation)
	}
	if len(in.RoomIDs) == 0 {
		return fmt.Errorf("%w: at least one room is required", ErrValidation)
	}
	seen := make(map[uint]bool, len(in.RoomIDs))
	for _, id := range in.RoomIDs {
		if id == 0 {
			return fmt.Errorf("%w: invalid room id 0", ErrValidation)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate room id %d", ErrValidation, id)
		}
		seen[id] = true
	}
	if in.NumberOfDays < 1 {
		return fmt.Errorf("%w: number of days must be at least 1", ErrValidation)
	}
	if in.CheckInDate.IsZero() {
		return fmt.Errorf("%w: check-in date is required", ErrValidation)
	}
	if in.AdvanceAmount < 0 {
		return fmt.Errorf("%w: advance amount must not be negative", ErrValidation)
	}
	if in.PartySize < 1 {
		in.PartySize = 1
	}
	return nil
}

// CreateGroupBooking creates one Confirmed row per requested room, all
// sharing a freshly generated check-in number. All-or-nothing: if any room
// is unavailable for [checkIn, checkOut) the whole request is rejected and
// nothing is created. Room status is untouched here; confirmed is not
// occupied.
func (s *BookingService) CreateGroupBooking(tenantID string, in GroupBookingInput) ([]models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	checkIn := truncateToDay(in.CheckInDate)
	checkOut := checkIn.AddDate(0, 0, in.NumberOfDays)

	var cust models.Customer
	if err := s.DB.Where("tenant_id = ?", tenantID).First(&cust, in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, in.CustomerID)
		}
		return nil, err
	}
	if in.AgentID != nil {
		var agent models.Agent
		if err := s.DB.Where("tenant_id = ?", tenantID).First(&agent, *in.AgentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: agent %d", ErrNotFound, *in.AgentID)
			}
			return nil, err
		}
	}

	roomIDs := append([]uint(nil), in.RoomIDs...)
	sort.Slice(roomIDs, func(i, j int) bool { return roomIDs[i] < roomIDs[j] })

	var rowIDs []uint
	var checkInNumber string

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the rooms first, in id order, then re-check availability
		// under the locks. This closes the check-then-act race.
		var rooms []models.Room
		if err := lockForUpdate(tx).
			Where("tenant_id = ? AND id IN ?", tenantID, roomIDs).
			Order("id").
			Find(&rooms).Error; err != nil {
			return err
		}
		if len(rooms) != len(roomIDs) {
			found := make(map[uint]bool, len(rooms))
			for _, r := range rooms {
				found[r.ID] = true
			}
			for _, id := range roomIDs {
				if !found[id] {
					return fmt.Errorf("%w: room %d", ErrNotFound, id)
				}
			}
		}

		for _, room := range rooms {
			n, err := countOverlapping(tx, tenantID, room.ID, checkIn, checkOut)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: room %s is booked for an overlapping range",
					ErrRoomUnavailable, room.RoomNumber)
			}
		}

		number, err := s.generateCheckInNumber(tx, tenantID)
		if err != nil {
			return err
		}
		checkInNumber = number

		var totalRent float64
		rents := make([]float64, len(rooms))
		for i, room := range rooms {
			rents[i] = room.PricePerNight * float64(in.NumberOfDays)
			totalRent += rents[i]
		}
		if in.AdvanceAmount > totalRent {
			return fmt.Errorf("%w: advance amount exceeds group total", ErrValidation)
		}

		// Canonical pricing: each row stores its own rent plus its
		// proportional advance share; the group total is only ever derived
		// (models.GroupTotal). The last row takes the remainder so the
		// shares always sum to the advance exactly.
		advances := apportion(in.AdvanceAmount, rents, totalRent)

		paymentStatus := models.PaymentStatusPending
		if in.AdvanceAmount > 0 {
			paymentStatus = models.PaymentStatusPartial
			if in.AdvanceAmount >= totalRent {
				paymentStatus = models.PaymentStatusPaid
			}
		}

		for i, room := range rooms {
			row := models.Booking{
				TenantID:      tenantID,
				CheckInNumber: checkInNumber,
				CustomerID:    in.CustomerID,
				RoomID:        room.ID,
				AgentID:       in.AgentID,
				CheckInDate:   checkIn,
				CheckOutDate:  checkOut,
				NumberOfDays:  in.NumberOfDays,
				ServiceType:   in.ServiceType,
				CheckInType:   in.CheckInType,
				PartySize:     in.PartySize,
				PartyDetail:   in.PartyDetail,
				RoomRent:      rents[i],
				AdvanceAmount: advances[i],
				Status:        models.BookingStatusConfirmed,
				PaymentStatus: paymentStatus,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create booking row for room %d: %w", room.ID, err)
			}
			rowIDs = append(rowIDs, row.ID)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("group booking created",
		zap.String("tenant", tenantID),
		zap.String("checkInNumber", checkInNumber),
		zap.Int("rooms", len(rowIDs)))

	return s.loadRows(tenantID, rowIDs)
}

func (s *BookingService) generateCheckInNumber(tx *gorm.DB, tenantID string) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		raw, err := utils.GenerateCheckInNumber(8)
		if err != nil {
			return "", fmt.Errorf("failed to generate check-in number: %w", err)
		}
		number, err := utils.FormatCheckInNumber(raw)
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.Model(&models.Booking{}).
			Where("tenant_id = ? AND check_in_number = ?", tenantID, number).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", errors.New("failed to generate a unique check-in number")
}

// apportion splits amount across rows proportionally to their rents; the
// last row absorbs rounding so the shares sum exactly.
func apportion(amount float64, rents []float64, totalRent float64) []float64 {
	shares := make([]float64, len(rents))
	if amount == 0 || len(rents) == 0 {
		return shares
	}
	var assigned float64
	for i := range rents {
		if i == len(rents)-1 {
			shares[i] = amount - assigned
			break
		}
		if totalRent > 0 {
			shares[i] = amount * rents[i] / totalRent
		} else {
			shares[i] = amount / float64(len(rents))
		}
		assigned += shares[i]
	}
	return shares
}

// canonicalCheckInNumber accepts whatever spelling a caller holds, raw or
// hyphenated, any case, and returns the stored "XXXX-XXXX" form.
func canonicalCheckInNumber(code string) (string, error) {
	if !utils.IsValidCheckInNumberFormat(code) {
		return "", fmt.Errorf("%w: malformed check-in number %q", ErrValidation, code)
	}
	return utils.FormatCheckInNumber(utils.NormalizeCheckInNumber(code))
}

// CheckIn transitions every Confirmed row under the number to CheckedIn and
// flips the affected rooms to Occupied. Re-invoking on an already
// checked-in group is a no-op success.
func (s *BookingService) CheckIn(tenantID, checkInNumber string) ([]models.Booking, error) {
	checkInNumber, err := canonicalCheckInNumber(checkInNumber)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		rows, err := s.groupRowsLocked(tx, tenantID, checkInNumber)
		if err != nil {
			return err
		}

		var confirmedIDs, roomIDs []uint
		alreadyIn := false
		for _, r := range rows {
			switch r.Status {
			case models.BookingStatusConfirmed:
				confirmedIDs = append(confirmedIDs, r.ID)
				roomIDs = append(roomIDs, r.RoomID)
			case models.BookingStatusCheckedIn:
				alreadyIn = true
			}
		}

		if len(confirmedIDs) == 0 {
			if alreadyIn {
				return nil // tolerate repeats
			}
			return fmt.Errorf("%w: no confirmed rows under %s", ErrInvalidState, checkInNumber)
		}

		if err := tx.Model(&models.Booking{}).
			Where("tenant_id = ? AND id IN ?", tenantID, confirmedIDs).
			Updates(map[string]interface{}{
				"status":        models.BookingStatusCheckedIn,
				"checked_in_at": now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Room{}).
			Where("tenant_id = ? AND id IN ?", tenantID, roomIDs).
			Update("status", models.RoomStatusOccupied).Error; err != nil {
			return err
		}

		s.Log.Info("group checked in",
			zap.String("tenant", tenantID),
			zap.String("checkInNumber", checkInNumber),
			zap.Int("rooms", len(roomIDs)))
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GroupByNumber(tenantID, checkInNumber)
}

// CheckOut transitions every CheckedIn row under the number to CheckedOut,
// flips the vacated rooms to Dirty, and creates exactly one checkout-clean
// task per vacated room. Task creation is part of the same transaction: a
// checkout without its tasks cannot be observed.
func (s *BookingService) CheckOut(tenantID, checkInNumber string) ([]models.Booking, []models.HousekeepingTask, error) {
	checkInNumber, err := canonicalCheckInNumber(checkInNumber)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()
	var taskIDs []uint

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		rows, err := s.groupRowsLocked(tx, tenantID, checkInNumber)
		if err != nil {
			return err
		}

		var inIDs []uint
		roomSet := make(map[uint]bool)
		alreadyOut := false
		for _, r := range rows {
			switch r.Status {
			case models.BookingStatusCheckedIn:
				inIDs = append(inIDs, r.ID)
				roomSet[r.RoomID] = true
			case models.BookingStatusCheckedOut:
				alreadyOut = true
			}
		}

		if len(inIDs) == 0 {
			if alreadyOut {
				return nil // tolerate repeats; tasks were created the first time
			}
			return fmt.Errorf("%w: no checked-in rows under %s", ErrInvalidState, checkInNumber)
		}

		if err := tx.Model(&models.Booking{}).
			Where("tenant_id = ? AND id IN ?", tenantID, inIDs).
			Updates(map[string]interface{}{
				"status":         models.BookingStatusCheckedOut,
				"checked_out_at": now,
			}).Error; err != nil {
			return err
		}

		roomIDs := make([]uint, 0, len(roomSet))
		for id := range roomSet {
			roomIDs = append(roomIDs, id)
		}
		sort.Slice(roomIDs, func(i, j int) bool { return roomIDs[i] < roomIDs[j] })

		if err := tx.Model(&models.Room{}).
			Where("tenant_id = ? AND id IN ?", tenantID, roomIDs).
			Update("status", models.RoomStatusDirty).Error; err != nil {
			return err
		}

		for _, roomID := range roomIDs {
			task := models.HousekeepingTask{
				TenantID: tenantID,
				RoomID:   roomID,
				Type:     models.TaskTypeCheckoutClean,
				Priority: models.TaskPriorityMedium,
				Status:   models.TaskStatusPending,
				Notes:    fmt.Sprintf("Auto-created on check-out of %s", checkInNumber),
			}
			if err := tx.Create(&task).Error; err != nil {
				return fmt.Errorf("failed to create checkout task for room %d: %w", roomID, err)
			}
			taskIDs = append(taskIDs, task.ID)
		}

		s.Log.Info("group checked out",
			zap.String("tenant", tenantID),
			zap.String("checkInNumber", checkInNumber),
			zap.Int("rooms", len(roomIDs)),
			zap.Int("tasks", len(taskIDs)))
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	rows, err := s.GroupByNumber(tenantID, checkInNumber)
	if err != nil {
		return nil, nil, err
	}
	var tasks []models.HousekeepingTask
	if len(taskIDs) > 0 {
		if err := s.DB.Where("tenant_id = ? AND id IN ?", tenantID, taskIDs).Find(&tasks).Error; err != nil {
			return nil, nil, err
		}
	}
	return rows, tasks, nil
}

// Cancel marks a single row Cancelled. Only legal from Confirmed; a guest
// can drop one room of a group without touching its siblings.
func (s *BookingService) Cancel(tenantID string, rowID uint) (models.Booking, error) {
	return s.terminateRow(tenantID, rowID, models.BookingStatusCancelled)
}

// NoShow marks a single row NoShow. Only legal from Confirmed.
func (s *BookingService) NoShow(tenantID string, rowID uint) (models.Booking, error) {
	return s.terminateRow(tenantID, rowID, models.BookingStatusNoShow)
}

func (s *BookingService) terminateRow(tenantID string, rowID uint, terminal string) (models.Booking, error) {
	var row models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("tenant_id = ?", tenantID).
			First(&row, rowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, rowID)
			}
			return err
		}
		if row.Status != models.BookingStatusConfirmed {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, row.Status, terminal)
		}
		// The room was never occupied, so its status stays untouched.
		return tx.Model(&row).Update("status", terminal).Error
	})
	if txErr != nil {
		return row, txErr
	}

	rows, err := s.loadRows(tenantID, []uint{rowID})
	if err != nil {
		return row, err
	}
	return rows[0], nil
}

// UpdatePaymentStatus moves the payment axis of a single row. Deliberately
// uncoupled from the booking state machine.
func (s *BookingService) UpdatePaymentStatus(tenantID string, rowID uint, status string) (models.Booking, error) {
	var row models.Booking
	if !models.IsValidPaymentStatus(status) {
		return row, fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}
	if err := s.DB.Where("tenant_id = ?", tenantID).First(&row, rowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, fmt.Errorf("%w: booking %d", ErrNotFound, rowID)
		}
		return row, err
	}
	if err := s.DB.Model(&row).Update("payment_status", status).Error; err != nil {
		return row, err
	}
	rows, err := s.loadRows(tenantID, []uint{rowID})
	if err != nil {
		return row, err
	}
	return rows[0], nil
}

// GetAllWithRelations lists every row for the tenant, newest first.
func (s *BookingService) GetAllWithRelations(tenantID string) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Customer").
		Preload("Room").
		Preload("Agent").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// ResolveCheckInNumber maps any row id onto its group's check-in number, so
// group actions accept whichever row the caller happens to hold.
func (s *BookingService) ResolveCheckInNumber(tenantID string, rowID uint) (string, error) {
	var row models.Booking
	if err := s.DB.Select("check_in_number").
		Where("tenant_id = ?", tenantID).
		First(&row, rowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: booking %d", ErrNotFound, rowID)
		}
		return "", err
	}
	return row.CheckInNumber, nil
}

// GroupByNumber returns every row sharing the check-in number, relations
// preloaded.
func (s *BookingService) GroupByNumber(tenantID, checkInNumber string) ([]models.Booking, error) {
	checkInNumber, err := canonicalCheckInNumber(checkInNumber)
	if err != nil {
		return nil, err
	}
	var rows []models.Booking
	if err := s.DB.
		Preload("Customer").
		Preload("Room").
		Preload("Agent").
		Where("tenant_id = ? AND check_in_number = ?", tenantID, checkInNumber).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: check-in number %s", ErrNotFound, checkInNumber)
	}
	return rows, nil
}

func (s *BookingService) groupRowsLocked(tx *gorm.DB, tenantID, checkInNumber string) ([]models.Booking, error) {
	var rows []models.Booking
	if err := lockForUpdate(tx).
		Where("tenant_id = ? AND check_in_number = ?", tenantID, checkInNumber).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: check-in number %s", ErrNotFound, checkInNumber)
	}
	return rows, nil
}

func (s *BookingService) loadRows(tenantID string, ids []uint) ([]models.Booking, error) {
	var rows []models.Booking
	err := s.DB.
		Preload("Customer").
		Preload("Room").
		Preload("Agent").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("id").
		Find(&rows).Error
	return rows, err
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
