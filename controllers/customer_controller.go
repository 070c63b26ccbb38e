package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-core/middleware"
	"hotel-core/models"
	"hotel-core/services"
	"hotel-core/utils"
)

type CustomerController struct {
	Customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{Customers: customers}
}

// POST /api/customers
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	var cust models.Customer
	if err := c.ShouldBindJSON(&cust); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := cc.Customers.Create(tenantID, cust)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

// GET /api/customers
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	list, err := cc.Customers.GetAll(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/customers/:id
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cust, err := cc.Customers.GetByID(tenantID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cust)
}

// PATCH /api/customers/:id
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
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

	cust, err := cc.Customers.Update(tenantID, id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cust)
}

// DELETE /api/customers/:id
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.Customers.Delete(tenantID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
