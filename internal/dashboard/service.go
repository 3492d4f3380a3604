package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maren/taskhive/internal/database/models"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type Summary struct {
	TotalProjects   int64
	TotalTasks      int64
	CompletedTasks  int64
	InProgressTasks int64
	OverdueTasks    int64
}

// GetSummary counts the organization's projects and work items. A task is
// overdue when its due date is strictly before now and it is not Done.
func (s *Service) GetSummary(ctx context.Context, orgID uuid.UUID) (*Summary, error) {
	db := s.db.WithContext(ctx)
	now := time.Now().UTC()

	var summary Summary
	if err := db.Model(&models.Project{}).
		Where("organization_id = ?", orgID).
		Count(&summary.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.WorkItem{}).
		Where("organization_id = ?", orgID).
		Count(&summary.TotalTasks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.WorkItem{}).
		Where("organization_id = ? AND status = ?", orgID, models.StatusDone).
		Count(&summary.CompletedTasks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.WorkItem{}).
		Where("organization_id = ? AND status = ?", orgID, models.StatusInProgress).
		Count(&summary.InProgressTasks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.WorkItem{}).
		Where("organization_id = ? AND due_date < ? AND status <> ?", orgID, now, models.StatusDone).
		Count(&summary.OverdueTasks).Error; err != nil {
		return nil, err
	}

	return &summary, nil
}
