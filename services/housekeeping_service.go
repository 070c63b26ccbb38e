package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-core/models"
)

// HousekeepingService owns task records: the ones the booking engine emits
// on checkout and the ones staff create by hand. Completing a task for a
// Dirty room is the sole automatic path returning that room to Available.
type HousekeepingService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewHousekeepingService(db *gorm.DB, log *zap.Logger) *HousekeepingService {
	return &HousekeepingService{DB: db, Log: log}
}

// taskTransitions is the allowed edge set. Delayed flags an SLA breach and
// can be entered from any non-terminal state; it still progresses to
// Completed. Completed is terminal.
var taskTransitions = map[string]map[string]bool{
	models.TaskStatusPending: {
		models.TaskStatusInProgress: true,
		models.TaskStatusDelayed:    true,
	},
	models.TaskStatusInProgress: {
		models.TaskStatusCompleted: true,
		models.TaskStatusDelayed:   true,
	},
	models.TaskStatusDelayed: {
		models.TaskStatusInProgress: true,
		models.TaskStatusCompleted:  true,
	},
	models.TaskStatusCompleted: {},
}

// List returns the tenant's tasks, pending-only unless includeCompleted.
func (s *HousekeepingService) List(tenantID string, includeCompleted bool) ([]models.HousekeepingTask, error) {
	q := s.DB.Preload("Room").Where("tenant_id = ?", tenantID).Order("created_at DESC")
	if !includeCompleted {
		q = q.Where("status <> ?", models.TaskStatusCompleted)
	}
	var tasks []models.HousekeepingTask
	err := q.Find(&tasks).Error
	return tasks, err
}

func (s *HousekeepingService) GetByID(tenantID string, id uint) (models.HousekeepingTask, error) {
	var task models.HousekeepingTask
	err := s.DB.Preload("Room").Where("tenant_id = ?", tenantID).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return task, fmt.Errorf("%w: task %d", ErrNotFound, id)
	}
	return task, err
}

// Create registers a manual task. The room must exist; everything else
// defaults sensibly.
func (s *HousekeepingService) Create(tenantID string, task models.HousekeepingTask) (models.HousekeepingTask, error) {
	task.TenantID = tenantID

	if task.RoomID == 0 {
		return task, fmt.Errorf("%w: room is required", ErrValidation)
	}
	var room models.Room
	if err := s.DB.Where("tenant_id = ?", tenantID).First(&room, task.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return task, fmt.Errorf("%w: room %d", ErrNotFound, task.RoomID)
		}
		return task, err
	}

	if task.Type == "" {
		task.Type = models.TaskTypeCheckoutClean
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if !models.IsValidTaskPriority(task.Priority) {
		return task, fmt.Errorf("%w: unknown priority %q", ErrValidation, task.Priority)
	}
	task.Status = models.TaskStatusPending
	task.StartedAt = nil
	task.CompletedAt = nil

	if err := s.DB.Create(&task).Error; err != nil {
		return task, err
	}
	return task, nil
}

// UpdateStatus walks the task along Pending -> In Progress -> Completed
// (Delayed as the SLA side branch). On the transition into Completed the
// associated room, if currently Dirty, returns to Available in the same
// transaction. Completing a task for a room in any other state leaves the
// room alone.
func (s *HousekeepingService) UpdateStatus(tenantID string, taskID uint, newStatus, staffName string) (models.HousekeepingTask, error) {
	var task models.HousekeepingTask
	now := time.Now().UTC()

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("tenant_id = ?", tenantID).
			First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: task %d", ErrNotFound, taskID)
			}
			return err
		}

		allowed, known := taskTransitions[task.Status]
		if !known {
			return fmt.Errorf("%w: task %d has unknown status %q", ErrInvalidState, taskID, task.Status)
		}
		if !allowed[newStatus] {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, newStatus)
		}

		updates := map[string]interface{}{"status": newStatus}
		if staffName != "" {
			updates["staff_name"] = staffName
		}
		switch newStatus {
		case models.TaskStatusInProgress:
			if task.StartedAt == nil {
				updates["started_at"] = now
			}
		case models.TaskStatusCompleted:
			updates["completed_at"] = now
		}

		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return err
		}

		if newStatus == models.TaskStatusCompleted {
			var room models.Room
			if err := lockForUpdate(tx).
				Where("tenant_id = ?", tenantID).
				First(&room, task.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Room deleted since; nothing to flip.
					return nil
				}
				return err
			}
			if room.Status == models.RoomStatusDirty {
				if err := tx.Model(&room).
					Update("status", models.RoomStatusAvailable).Error; err != nil {
					return err
				}
				s.Log.Info("room returned to service",
					zap.String("tenant", tenantID),
					zap.Uint("room", room.ID),
					zap.Uint("task", taskID))
			}
		}
		return nil
	})
	if txErr != nil {
		return task, txErr
	}

	return s.GetByID(tenantID, taskID)
}
