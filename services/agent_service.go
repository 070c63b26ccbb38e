package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-core/models"
)

type AgentService struct {
	DB *gorm.DB
}

func NewAgentService(db *gorm.DB) *AgentService {
	return &AgentService{DB: db}
}

func (s *AgentService) Create(tenantID string, agent models.Agent) (models.Agent, error) {
	agent.TenantID = tenantID
	agent.Name = strings.TrimSpace(agent.Name)
	if agent.Name == "" {
		return agent, fmt.Errorf("%w: agent name is required", ErrValidation)
	}
	if agent.CommissionPercent < 0 || agent.CommissionPercent > 100 {
		return agent, fmt.Errorf("%w: commission percent must be within [0, 100]", ErrValidation)
	}
	err := s.DB.Create(&agent).Error
	return agent, err
}

func (s *AgentService) GetAll(tenantID string) ([]models.Agent, error) {
	var list []models.Agent
	err := s.DB.Where("tenant_id = ?", tenantID).Order("name").Find(&list).Error
	return list, err
}

func (s *AgentService) GetByID(tenantID string, id uint) (models.Agent, error) {
	var agent models.Agent
	err := s.DB.Where("tenant_id = ?", tenantID).First(&agent, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return agent, fmt.Errorf("%w: agent %d", ErrNotFound, id)
	}
	return agent, err
}

func (s *AgentService) Update(tenantID string, id uint, updates map[string]interface{}) (models.Agent, error) {
	agent, err := s.GetByID(tenantID, id)
	if err != nil {
		return agent, err
	}
	for _, k := range []string{"id", "tenant_id", "tenantId", "created_at", "updated_at", "deleted_at"} {
		delete(updates, k)
	}
	if raw, ok := updates["commissionPercent"]; ok {
		updates["commission_percent"] = raw
		delete(updates, "commissionPercent")
	}
	if raw, ok := updates["commission_percent"]; ok {
		if v, isNum := raw.(float64); isNum && (v < 0 || v > 100) {
			return agent, fmt.Errorf("%w: commission percent must be within [0, 100]", ErrValidation)
		}
	}
	if err := s.DB.Model(&models.Agent{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error; err != nil {
		return agent, err
	}
	return s.GetByID(tenantID, id)
}
