package projects

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maren/taskhive/internal/apperr"
	"github.com/maren/taskhive/internal/database/models"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Summary is an active project annotated with its work-item counts.
type Summary struct {
	ID             uuid.UUID
	Name           string
	Description    *string
	DueDate        *time.Time
	TotalItems     int
	CompletedItems int
	IsCompleted    bool
}

// CompletedSummary adds the stats reported only for completed projects.
type CompletedSummary struct {
	Summary
	DistinctAssignees int
	CompletedAt       time.Time
}

type CreateInput struct {
	Name        string
	Description *string
	DueDate     *time.Time
}

type itemCounts struct {
	ProjectID uuid.UUID
	Total     int
	Done      int
	Assignees int
}

func (s *Service) countsByProject(ctx context.Context, orgID uuid.UUID) (map[uuid.UUID]itemCounts, error) {
	var rows []itemCounts
	err := s.db.WithContext(ctx).
		Model(&models.WorkItem{}).
		Select("project_id, count(*) as total, sum(case when status = ? then 1 else 0 end) as done, count(distinct assignee_id) as assignees", models.StatusDone).
		Where("organization_id = ?", orgID).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]itemCounts, len(rows))
	for _, row := range rows {
		counts[row.ProjectID] = row
	}
	return counts, nil
}

// ListActive returns the organization's incomplete projects ordered by name,
// each with total and done work-item counts.
func (s *Service) ListActive(ctx context.Context, orgID uuid.UUID) ([]Summary, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).
		Where("organization_id = ? AND is_completed = ?", orgID, false).
		Order("name ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	counts, err := s.countsByProject(ctx, orgID)
	if err != nil {
		return nil, err
	}

	result := make([]Summary, len(projects))
	for i, p := range projects {
		c := counts[p.ID]
		result[i] = Summary{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			DueDate:        p.DueDate,
			TotalItems:     c.Total,
			CompletedItems: c.Done,
			IsCompleted:    p.IsCompleted,
		}
	}
	return result, nil
}

// ListCompleted returns completed projects ordered by most recently updated,
// with distinct-assignee counts and the completion timestamp.
func (s *Service) ListCompleted(ctx context.Context, orgID uuid.UUID) ([]CompletedSummary, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).
		Where("organization_id = ? AND is_completed = ?", orgID, true).
		Order("updated_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	counts, err := s.countsByProject(ctx, orgID)
	if err != nil {
		return nil, err
	}

	result := make([]CompletedSummary, len(projects))
	for i, p := range projects {
		c := counts[p.ID]
		result[i] = CompletedSummary{
			Summary: Summary{
				ID:             p.ID,
				Name:           p.Name,
				Description:    p.Description,
				DueDate:        p.DueDate,
				TotalItems:     c.Total,
				CompletedItems: c.Done,
				IsCompleted:    true,
			},
			DistinctAssignees: c.Assignees,
			CompletedAt:       p.UpdatedAt,
		}
	}
	return result, nil
}

// Create adds a project and binds the creating user as its manager.
func (s *Service) Create(ctx context.Context, orgID, callerID uuid.UUID, input CreateInput) (*Summary, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("Project name is required.")
	}

	project := models.Project{
		OrganizationID: orgID,
		Name:           name,
		Description:    trimPtr(input.Description),
		DueDate:        input.DueDate,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    callerID,
			Role:      models.ProjectRoleManager,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	return &Summary{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		DueDate:     project.DueDate,
	}, nil
}

// Delete removes a project together with its memberships, work items and
// their comments. The project exclusively owns all of them.
func (s *Service) Delete(ctx context.Context, orgID, projectID uuid.UUID) error {
	var project models.Project
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", projectID, orgID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Project not found.")
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&models.WorkItem{}).Select("id").Where("project_id = ?", project.ID)
		if err := tx.Where("work_item_id IN (?)", itemIDs).Delete(&models.WorkItemComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.WorkItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// Complete marks a project completed. It fails while any work item is not
// Done, naming the distinct offending statuses.
func (s *Service) Complete(ctx context.Context, orgID, projectID uuid.UUID) (*Summary, error) {
	var project models.Project
	var summary *Summary

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Preload("WorkItems").
			Where("id = ? AND organization_id = ?", projectID, orgID).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Project not found.")
			}
			return err
		}

		seen := make(map[models.WorkItemStatus]bool)
		done := 0
		for _, item := range project.WorkItems {
			if item.Status == models.StatusDone {
				done++
				continue
			}
			seen[item.Status] = true
		}

		if len(seen) > 0 {
			statuses := make([]models.WorkItemStatus, 0, len(seen))
			for st := range seen {
				statuses = append(statuses, st)
			}
			sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
			names := make([]string, len(statuses))
			for i, st := range statuses {
				names[i] = st.String()
			}
			return apperr.Validationf(
				"Cannot complete project. Not all tasks are finished. Incomplete statuses: %s",
				strings.Join(names, ", "),
			)
		}

		if err := tx.Model(&project).Updates(map[string]interface{}{
			"is_completed": true,
			"updated_at":   time.Now().UTC(),
		}).Error; err != nil {
			return err
		}

		summary = &Summary{
			ID:             project.ID,
			Name:           project.Name,
			Description:    project.Description,
			DueDate:        project.DueDate,
			TotalItems:     len(project.WorkItems),
			CompletedItems: done,
			IsCompleted:    true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
