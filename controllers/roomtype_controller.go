package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-core/middleware"
	"hotel-core/models"
	"hotel-core/services"
	"hotel-core/utils"
)

type RoomTypeController struct {
	Types *services.RoomTypeService
}

func NewRoomTypeController(types *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{Types: types}
}

// GET /api/room-types
func (tc *RoomTypeController) GetRoomTypes(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	types, err := tc.Types.GetAll(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

// POST /api/room-types
func (tc *RoomTypeController) CreateRoomType(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := tc.Types.Create(tenantID, rt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

// DELETE /api/room-types/:id
func (tc *RoomTypeController) DeleteRoomType(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.Types.Delete(tenantID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
