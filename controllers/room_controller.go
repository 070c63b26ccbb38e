package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-core/middleware"
	"hotel-core/models"
	"hotel-core/services"
	"hotel-core/utils"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

type createRoomRequest struct {
	RoomNumber    string  `json:"roomNumber"`
	Type          string  `json:"type"`
	RoomTypeID    *uint   `json:"roomTypeId"`
	Floor         string  `json:"floor"`
	PricePerNight float64 `json:"pricePerNight"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
}

// POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	errs := map[string]string{}
	if strings.TrimSpace(req.RoomNumber) == "" {
		errs["roomNumber"] = "is required"
	}
	if req.PricePerNight < 0 {
		errs["pricePerNight"] = "must not be negative"
	}
	if len(errs) > 0 {
		utils.JSONValidationError(c, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	room, err := rc.Rooms.Create(tenantID, models.Room{
		RoomNumber:    req.RoomNumber,
		Type:          req.Type,
		RoomTypeID:    req.RoomTypeID,
		Floor:         req.Floor,
		PricePerNight: req.PricePerNight,
		Description:   req.Description,
		Status:        req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// GET /api/rooms
func (rc *RoomController) GetRooms(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	rooms, err := rc.Rooms.GetAll(tenantID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (rc *RoomController) GetRoom(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := rc.Rooms.GetByID(tenantID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// PATCH /api/rooms/:id
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	room, err := rc.Rooms.Update(tenantID, id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type roomStatusRequest struct {
	Status string `json:"status"`
}

// PATCH /api/rooms/:id/status — manual status override. Bypasses the task
// system entirely; the registry applies it directly.
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		utils.JSONValidationError(c, http.StatusBadRequest, "Validation failed",
			map[string]string{"status": "is required"})
		return
	}

	if err := rc.Rooms.SetStatus(tenantID, id, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	room, err := rc.Rooms.GetByID(tenantID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DELETE /api/rooms/:id
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := rc.Rooms.Delete(tenantID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
