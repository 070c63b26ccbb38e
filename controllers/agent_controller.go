package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-core/middleware"
	"hotel-core/models"
	"hotel-core/services"
	"hotel-core/utils"
)

type AgentController struct {
	Agents *services.AgentService
}

func NewAgentController(agents *services.AgentService) *AgentController {
	return &AgentController{Agents: agents}
}

// POST /api/agents
func (ac *AgentController) CreateAgent(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	var agent models.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := ac.Agents.Create(tenantID, agent)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

// GET /api/agents
func (ac *AgentController) GetAgents(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	list, err := ac.Agents.GetAll(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// PATCH /api/agents/:id
func (ac *AgentController) UpdateAgent(c *gin.Context) {
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

	agent, err := ac.Agents.Update(tenantID, id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, agent)
}
