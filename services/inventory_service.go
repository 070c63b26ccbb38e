package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-core/models"
)

// InventoryService is the stock ledger. The low-stock predicate is applied
// at read time (quantity <= min_threshold), never materialized, so it can
// never drift from the current quantity.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

func (s *InventoryService) Create(tenantID string, item models.InventoryItem) (models.InventoryItem, error) {
	item.TenantID = tenantID
	item.Name = strings.TrimSpace(item.Name)

	if item.Name == "" {
		return item, fmt.Errorf("%w: item name is required", ErrValidation)
	}
	if item.Quantity < 0 {
		return item, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if item.MinThreshold < 0 {
		return item, fmt.Errorf("%w: minimum threshold must not be negative", ErrValidation)
	}

	if err := s.DB.Create(&item).Error; err != nil {
		return item, err
	}
	item.LowStock = item.IsLowStock()
	return item, nil
}

// GetAll lists items; lowOnly narrows to the derived low-stock set.
func (s *InventoryService) GetAll(tenantID string, lowOnly bool) ([]models.InventoryItem, error) {
	q := s.DB.Where("tenant_id = ?", tenantID).Order("name")
	if lowOnly {
		q = q.Where("quantity <= min_threshold")
	}
	var items []models.InventoryItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		items[i].LowStock = items[i].IsLowStock()
	}
	return items, nil
}

func (s *InventoryService) GetByID(tenantID string, id uint) (models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.DB.Where("tenant_id = ?", tenantID).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, fmt.Errorf("%w: inventory item %d", ErrNotFound, id)
	}
	item.LowStock = item.IsLowStock()
	return item, err
}

func (s *InventoryService) Update(tenantID string, id uint, updates map[string]interface{}) (models.InventoryItem, error) {
	item, err := s.GetByID(tenantID, id)
	if err != nil {
		return item, err
	}

	for _, k := range []string{"id", "tenant_id", "tenantId", "created_at", "updated_at", "deleted_at", "lowStock", "low_stock"} {
		delete(updates, k)
	}
	if raw, ok := updates["minThreshold"]; ok {
		updates["min_threshold"] = raw
		delete(updates, "minThreshold")
	}
	if raw, ok := updates["quantity"]; ok {
		if q, isNum := raw.(float64); isNum && q < 0 {
			return item, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
		}
	}
	if raw, ok := updates["min_threshold"]; ok {
		if m, isNum := raw.(float64); isNum && m < 0 {
			return item, fmt.Errorf("%w: minimum threshold must not be negative", ErrValidation)
		}
	}
	if raw, ok := updates["name"]; ok {
		name := strings.TrimSpace(fmt.Sprintf("%v", raw))
		if name == "" {
			return item, fmt.Errorf("%w: item name is required", ErrValidation)
		}
		updates["name"] = name
	}

	if err := s.DB.Model(&models.InventoryItem{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error; err != nil {
		return item, err
	}
	return s.GetByID(tenantID, id)
}

func (s *InventoryService) Delete(tenantID string, id uint) error {
	if _, err := s.GetByID(tenantID, id); err != nil {
		return err
	}
	return s.DB.Where("tenant_id = ?", tenantID).Delete(&models.InventoryItem{}, id).Error
}
