package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-core/models"
)

// CustomerService holds guest identity records. The booking engine only
// reads them; nothing here is touched by state transitions.
type CustomerService struct {
	DB *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

func (s *CustomerService) Create(tenantID string, cust models.Customer) (models.Customer, error) {
	cust.TenantID = tenantID
	cust.FullName = strings.TrimSpace(cust.FullName)
	if cust.FullName == "" {
		return cust, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	err := s.DB.Create(&cust).Error
	return cust, err
}

func (s *CustomerService) GetAll(tenantID string) ([]models.Customer, error) {
	var list []models.Customer
	err := s.DB.Where("tenant_id = ?", tenantID).Order("full_name").Find(&list).Error
	return list, err
}

func (s *CustomerService) GetByID(tenantID string, id uint) (models.Customer, error) {
	var cust models.Customer
	err := s.DB.Where("tenant_id = ?", tenantID).First(&cust, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cust, fmt.Errorf("%w: customer %d", ErrNotFound, id)
	}
	return cust, err
}

func (s *CustomerService) Update(tenantID string, id uint, updates map[string]interface{}) (models.Customer, error) {
	cust, err := s.GetByID(tenantID, id)
	if err != nil {
		return cust, err
	}
	for _, k := range []string{"id", "tenant_id", "tenantId", "created_at", "updated_at", "deleted_at"} {
		delete(updates, k)
	}
	if raw, ok := updates["fullName"]; ok {
		updates["full_name"] = raw
		delete(updates, "fullName")
	}
	if raw, ok := updates["full_name"]; ok {
		name := strings.TrimSpace(fmt.Sprintf("%v", raw))
		if name == "" {
			return cust, fmt.Errorf("%w: full name is required", ErrValidation)
		}
		updates["full_name"] = name
	}
	if err := s.DB.Model(&models.Customer{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error; err != nil {
		return cust, err
	}
	return s.GetByID(tenantID, id)
}

func (s *CustomerService) Delete(tenantID string, id uint) error {
	if _, err := s.GetByID(tenantID, id); err != nil {
		return err
	}
	var active int64
	if err := s.DB.Model(&models.Booking{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, id).
		Where("status IN ?", []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: customer %d has active bookings", ErrConflict, id)
	}
	return s.DB.Where("tenant_id = ?", tenantID).Delete(&models.Customer{}, id).Error
}
