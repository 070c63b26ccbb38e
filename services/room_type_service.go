package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-core/models"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) GetAll(tenantID string) ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.Where("tenant_id = ?", tenantID).Order("type_name").Find(&types).Error
	return types, err
}

func (s *RoomTypeService) Create(tenantID string, rt models.RoomType) (models.RoomType, error) {
	rt.TenantID = tenantID
	rt.TypeName = strings.TrimSpace(rt.TypeName)
	if rt.TypeName == "" {
		return rt, fmt.Errorf("%w: type name is required", ErrValidation)
	}

	var count int64
	if err := s.DB.Model(&models.RoomType{}).
		Where("tenant_id = ? AND type_name = ?", tenantID, rt.TypeName).
		Count(&count).Error; err != nil {
		return rt, err
	}
	if count > 0 {
		return rt, fmt.Errorf("%w: room type %q already exists", ErrConflict, rt.TypeName)
	}

	if err := s.DB.Create(&rt).Error; err != nil {
		if isDuplicateErr(err) {
			return rt, fmt.Errorf("%w: room type %q already exists", ErrConflict, rt.TypeName)
		}
		return rt, err
	}
	return rt, nil
}

func (s *RoomTypeService) Delete(tenantID string, id uint) error {
	var rt models.RoomType
	if err := s.DB.Where("tenant_id = ?", tenantID).First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: room type %d", ErrNotFound, id)
		}
		return err
	}

	var inUse int64
	if err := s.DB.Model(&models.Room{}).
		Where("tenant_id = ? AND room_type_id = ?", tenantID, id).
		Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("%w: room type %d is referenced by rooms", ErrConflict, id)
	}

	return s.DB.Delete(&rt).Error
}
