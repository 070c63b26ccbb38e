package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-core/middleware"
	"hotel-core/models"
	"hotel-core/services"
	"hotel-core/utils"
)

type InventoryController struct {
	Inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{Inventory: inventory}
}

// POST /api/inventory
func (ic *InventoryController) CreateItem(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := ic.Inventory.Create(tenantID, item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

// GET /api/inventory?lowStock=true
func (ic *InventoryController) GetItems(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	items, err := ic.Inventory.GetAll(tenantID, c.Query("lowStock") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

// GET /api/inventory/:id
func (ic *InventoryController) GetItem(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ic.Inventory.GetByID(tenantID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, item)
}

// PATCH /api/inventory/:id
func (ic *InventoryController) UpdateItem(c *gin.Context) {
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

	item, err := ic.Inventory.Update(tenantID, id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, item)
}

// DELETE /api/inventory/:id
func (ic *InventoryController) DeleteItem(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ic.Inventory.Delete(tenantID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
