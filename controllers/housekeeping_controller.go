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

type HousekeepingController struct {
	Tasks *services.HousekeepingService
}

func NewHousekeepingController(tasks *services.HousekeepingService) *HousekeepingController {
	return &HousekeepingController{Tasks: tasks}
}

// GET /api/housekeeping — pending tasks by default, ?all=true for history.
func (hc *HousekeepingController) GetTasks(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	tasks, err := hc.Tasks.List(tenantID, c.Query("all") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tasks)
}

type createTaskRequest struct {
	RoomID    uint   `json:"roomId"`
	Type      string `json:"type"`
	Priority  string `json:"priority"`
	StaffName string `json:"staffName"`
	Notes     string `json:"notes"`
}

// POST /api/housekeeping — manual task creation.
func (hc *HousekeepingController) CreateTask(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.RoomID == 0 {
		utils.JSONValidationError(c, http.StatusBadRequest, "Validation failed",
			map[string]string{"roomId": "is required"})
		return
	}

	task, err := hc.Tasks.Create(tenantID, models.HousekeepingTask{
		RoomID:    req.RoomID,
		Type:      req.Type,
		Priority:  req.Priority,
		StaffName: req.StaffName,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, task)
}

type taskStatusRequest struct {
	Status    string `json:"status"`
	StaffName string `json:"staffName"`
}

// PATCH /api/housekeeping/:id/status
func (hc *HousekeepingController) UpdateStatus(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		utils.JSONValidationError(c, http.StatusBadRequest, "Validation failed",
			map[string]string{"status": "is required"})
		return
	}

	task, err := hc.Tasks.UpdateStatus(tenantID, id, req.Status, req.StaffName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, task)
}
