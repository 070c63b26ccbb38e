package services

import (
	"iter"
	"time"

	"gorm.io/gorm"

	"hotel-core/models"
)

// ReportService computes point-in-time and trailing-window metrics from the
// room registry and booking rows. Read-only: it never mutates state, and it
// tolerates being a hair behind concurrent mutations.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type Summary struct {
	TotalRooms        int64   `json:"totalRooms"`
	OccupiedRooms     int64   `json:"occupiedRooms"`
	OccupancyRate     float64 `json:"occupancyRate"`
	RoomsSoldToday    int64   `json:"roomsSoldToday"`
	TotalRevenueToday float64 `json:"totalRevenueToday"`
	ADR               float64 `json:"adr"`
	RevPAR            float64 `json:"revpar"`
}

type TrendPoint struct {
	Date      string  `json:"date"`
	Revenue   float64 `json:"revenue"`
	Occupancy float64 `json:"occupancy"`
}

// SummaryAt computes today's operational metrics relative to now. Empty
// hotels report zero rates rather than failing on division.
func (s *ReportService) SummaryAt(tenantID string, now time.Time) (Summary, error) {
	var out Summary

	if err := s.DB.Model(&models.Room{}).
		Where("tenant_id = ?", tenantID).
		Count(&out.TotalRooms).Error; err != nil {
		return out, err
	}
	if err := s.DB.Model(&models.Room{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.RoomStatusOccupied).
		Count(&out.OccupiedRooms).Error; err != nil {
		return out, err
	}

	dayStart := truncateToDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	type revenueRow struct {
		Total float64
		N     int64
	}
	var rev revenueRow
	if err := s.DB.Model(&models.Booking{}).
		Select("COALESCE(SUM(room_rent), 0) AS total, COUNT(*) AS n").
		Where("tenant_id = ?", tenantID).
		Where("status <> ?", models.BookingStatusCancelled).
		Where("check_in_date >= ? AND check_in_date < ?", dayStart, dayEnd).
		Scan(&rev).Error; err != nil {
		return out, err
	}
	out.TotalRevenueToday = rev.Total
	out.RoomsSoldToday = rev.N

	if out.TotalRooms > 0 {
		out.OccupancyRate = float64(out.OccupiedRooms) / float64(out.TotalRooms) * 100
		out.RevPAR = out.TotalRevenueToday / float64(out.TotalRooms)
	}
	if out.RoomsSoldToday > 0 {
		out.ADR = out.TotalRevenueToday / float64(out.RoomsSoldToday)
	}
	return out, nil
}

func (s *ReportService) Summary(tenantID string) (Summary, error) {
	return s.SummaryAt(tenantID, time.Now().UTC())
}

// TrendsAt yields one point per day of the trailing window, oldest first.
// The sequence is lazy: each day is computed as it is pulled, and the
// sequence cannot be restarted once consumed. Occupancy for a day counts
// rooms whose booking (any non-cancelled, non-no-show row) covered that
// day; revenue attributes rows to their creation day.
func (s *ReportService) TrendsAt(tenantID string, windowDays int, now time.Time) iter.Seq2[TrendPoint, error] {
	if windowDays < 1 {
		windowDays = 7
	}
	if windowDays > 90 {
		windowDays = 90
	}

	return func(yield func(TrendPoint, error) bool) {
		var totalRooms int64
		if err := s.DB.Model(&models.Room{}).
			Where("tenant_id = ?", tenantID).
			Count(&totalRooms).Error; err != nil {
			yield(TrendPoint{}, err)
			return
		}

		today := truncateToDay(now)
		for offset := windowDays - 1; offset >= 0; offset-- {
			day := today.AddDate(0, 0, -offset)
			next := day.AddDate(0, 0, 1)

			point := TrendPoint{Date: day.Format("2006-01-02")}

			var occupied int64
			if err := s.DB.Model(&models.Booking{}).
				Distinct("room_id").
				Where("tenant_id = ?", tenantID).
				Where("status NOT IN ?", []string{models.BookingStatusCancelled, models.BookingStatusNoShow}).
				Where("check_in_date < ? AND check_out_date > ?", next, day).
				Count(&occupied).Error; err != nil {
				yield(point, err)
				return
			}
			if totalRooms > 0 {
				point.Occupancy = float64(occupied) / float64(totalRooms) * 100
			}

			var revenue float64
			if err := s.DB.Model(&models.Booking{}).
				Select("COALESCE(SUM(room_rent), 0)").
				Where("tenant_id = ?", tenantID).
				Where("status <> ?", models.BookingStatusCancelled).
				Where("created_at >= ? AND created_at < ?", day, next).
				Scan(&revenue).Error; err != nil {
				yield(point, err)
				return
			}
			point.Revenue = revenue

			if !yield(point, nil) {
				return
			}
		}
	}
}

func (s *ReportService) Trends(tenantID string, windowDays int) iter.Seq2[TrendPoint, error] {
	return s.TrendsAt(tenantID, windowDays, time.Now().UTC())
}
