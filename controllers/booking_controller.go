package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"hotel-core/middleware"
	"hotel-core/models"
	"hotel-core/services"
	"hotel-core/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

type createBookingRequest struct {
	CustomerID    uint           `json:"customerId"`
	RoomIDs       []uint         `json:"roomIds"`
	CheckInDate   string         `json:"checkInDate"`
	NumberOfDays  int            `json:"numberOfDays"`
	ServiceType   string         `json:"serviceType"`
	CheckInType   string         `json:"checkInType"`
	PartySize     int            `json:"partySize"`
	PartyDetail   datatypes.JSON `json:"partyDetail"`
	AgentID       *uint          `json:"agentId"`
	AdvanceAmount float64        `json:"advanceAmount"`
}

type groupResponse struct {
	CheckInNumber string                    `json:"checkInNumber"`
	TotalAmount   float64                   `json:"totalAmount"`
	Active        bool                      `json:"active"`
	Bookings      []models.Booking          `json:"bookings"`
	Tasks         []models.HousekeepingTask `json:"tasks,omitempty"`
}

func newGroupResponse(rows []models.Booking) groupResponse {
	resp := groupResponse{
		TotalAmount: models.GroupTotal(rows),
		Bookings:    rows,
	}
	if len(rows) > 0 {
		resp.CheckInNumber = rows[0].CheckInNumber
	}
	for _, row := range rows {
		if row.Active() {
			resp.Active = true
			break
		}
	}
	return resp
}

// POST /api/bookings
func (bc *BookingController) CreateBooking(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	errs := map[string]string{}
	if req.CustomerID == 0 {
		errs["customerId"] = "is required"
	}
	if len(req.RoomIDs) == 0 {
		errs["roomIds"] = "at least one room is required"
	}
	if req.NumberOfDays < 1 {
		errs["numberOfDays"] = "must be at least 1"
	}
	var checkIn time.Time
	if strings.TrimSpace(req.CheckInDate) == "" {
		errs["checkInDate"] = "is required"
	} else {
		parsed, err := time.Parse("2006-01-02", req.CheckInDate)
		if err != nil {
			errs["checkInDate"] = "must be formatted as YYYY-MM-DD"
		} else {
			checkIn = parsed
		}
	}
	if req.AdvanceAmount < 0 {
		errs["advanceAmount"] = "must not be negative"
	}
	if len(errs) > 0 {
		utils.JSONValidationError(c, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	rows, err := bc.Bookings.CreateGroupBooking(tenantID, services.GroupBookingInput{
		CustomerID:    req.CustomerID,
		RoomIDs:       req.RoomIDs,
		CheckInDate:   checkIn,
		NumberOfDays:  req.NumberOfDays,
		ServiceType:   req.ServiceType,
		CheckInType:   req.CheckInType,
		PartySize:     req.PartySize,
		PartyDetail:   req.PartyDetail,
		AgentID:       req.AgentID,
		AdvanceAmount: req.AdvanceAmount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, newGroupResponse(rows))
}

// GET /api/bookings
func (bc *BookingController) GetBookings(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	rows, err := bc.Bookings.GetAllWithRelations(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// GET /api/bookings/:id — any row id resolves to its whole group.
func (bc *BookingController) GetBooking(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	number, err := bc.Bookings.ResolveCheckInNumber(tenantID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	rows, err := bc.Bookings.GroupByNumber(tenantID, number)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, newGroupResponse(rows))
}

// GET /api/bookings/number/:number — group lookup by the reference guests
// actually hold. Accepts any spelling of the code.
func (bc *BookingController) GetByNumber(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	rows, err := bc.Bookings.GroupByNumber(tenantID, c.Param("number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, newGroupResponse(rows))
}

// POST /api/bookings/:id/check-in — acts on the full group regardless of
// which row id was passed.
func (bc *BookingController) CheckIn(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	number, err := bc.Bookings.ResolveCheckInNumber(tenantID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	rows, err := bc.Bookings.CheckIn(tenantID, number)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, newGroupResponse(rows))
}

// POST /api/bookings/:id/check-out
func (bc *BookingController) CheckOut(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	number, err := bc.Bookings.ResolveCheckInNumber(tenantID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	rows, tasks, err := bc.Bookings.CheckOut(tenantID, number)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := newGroupResponse(rows)
	resp.Tasks = tasks
	utils.JSONSuccess(c, http.StatusOK, resp)
}

// POST /api/bookings/:id/cancel — single row only.
func (bc *BookingController) Cancel(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	row, err := bc.Bookings.Cancel(tenantID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, row)
}

// POST /api/bookings/:id/no-show — single row only.
func (bc *BookingController) NoShow(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	row, err := bc.Bookings.NoShow(tenantID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, row)
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// PATCH /api/bookings/:id/payment
func (bc *BookingController) UpdatePayment(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PaymentStatus) == "" {
		utils.JSONValidationError(c, http.StatusBadRequest, "Validation failed",
			map[string]string{"paymentStatus": "is required"})
		return
	}

	row, err := bc.Bookings.UpdatePaymentStatus(tenantID, id, req.PaymentStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, row)
}
