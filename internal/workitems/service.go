package workitems

import (
	"context"
	"errors"
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

// ItemView is a work item enriched with its assignee's name and email when
// one is assigned.
type ItemView struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	Title         string
	Description   *string
	Status        models.WorkItemStatus
	Priority      models.WorkItemPriority
	AssigneeID    *uuid.UUID
	AssigneeName  *string
	AssigneeEmail *string
	DueDate       *time.Time
	StoryPoints   int
}

type CreateInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description *string
	AssigneeID  *uuid.UUID
	Priority    models.WorkItemPriority
	DueDate     *time.Time
	StoryPoints int
}

type CommentView struct {
	ID         uuid.UUID
	WorkItemID uuid.UUID
	AuthorID   uuid.UUID
	AuthorName string
	Body       string
	CreatedAt  time.Time
}

func itemToView(item *models.WorkItem) ItemView {
	view := ItemView{
		ID:          item.ID,
		ProjectID:   item.ProjectID,
		Title:       item.Title,
		Description: item.Description,
		Status:      item.Status,
		Priority:    item.Priority,
		AssigneeID:  item.AssigneeID,
		DueDate:     item.DueDate,
		StoryPoints: item.StoryPoints,
	}
	if item.Assignee != nil {
		view.AssigneeName = &item.Assignee.DisplayName
		view.AssigneeEmail = &item.Assignee.Email
	}
	return view
}

// ListByProject returns a project's items ordered by status then priority,
// ready to be grouped into board columns.
func (s *Service) ListByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]ItemView, error) {
	var items []models.WorkItem
	if err := s.db.WithContext(ctx).
		Preload("Assignee").
		Where("project_id = ? AND organization_id = ?", projectID, orgID).
		Order("status ASC, priority ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	views := make([]ItemView, len(items))
	for i := range items {
		views[i] = itemToView(&items[i])
	}
	return views, nil
}

// Create adds a work item in Backlog. The project must belong to the
// caller's organization, and so must the assignee when one is given.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, input CreateInput) (*ItemView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Validation("Task title is required.")
	}

	var projectCount int64
	if err := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND organization_id = ?", input.ProjectID, orgID).
		Count(&projectCount).Error; err != nil {
		return nil, err
	}
	if projectCount == 0 {
		return nil, apperr.NotFound("Project not found.")
	}

	if input.AssigneeID != nil {
		if err := s.assigneeInOrg(ctx, orgID, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	priority := input.Priority
	if priority == 0 {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperr.Validation("Invalid priority.")
	}

	item := models.WorkItem{
		OrganizationID: orgID,
		ProjectID:      input.ProjectID,
		AssigneeID:     input.AssigneeID,
		Title:          title,
		Description:    trimPtr(input.Description),
		Status:         models.StatusBacklog,
		Priority:       priority,
		DueDate:        input.DueDate,
		StoryPoints:    input.StoryPoints,
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}

	return s.loadView(ctx, &item)
}

// UpdateStatus sets a new status unconditionally; any status may jump to any
// other, the five-value enumeration is the only guard.
func (s *Service) UpdateStatus(ctx context.Context, orgID, itemID uuid.UUID, status models.WorkItemStatus) (*ItemView, error) {
	if !status.Valid() {
		return nil, apperr.Validation("Invalid status.")
	}

	item, err := s.find(ctx, orgID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}).Error; err != nil {
		return nil, err
	}
	item.Status = status

	return s.loadView(ctx, item)
}

// UpdateAssignee sets or clears the assignee. A non-nil assignee must belong
// to the caller's organization.
func (s *Service) UpdateAssignee(ctx context.Context, orgID, itemID uuid.UUID, assigneeID *uuid.UUID) (*ItemView, error) {
	item, err := s.find(ctx, orgID, itemID)
	if err != nil {
		return nil, err
	}

	if assigneeID != nil {
		if err := s.assigneeInOrg(ctx, orgID, *assigneeID); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"assignee_id": assigneeID,
		"updated_at":  time.Now().UTC(),
	}).Error; err != nil {
		return nil, err
	}
	item.AssigneeID = assigneeID
	item.Assignee = nil

	return s.loadView(ctx, item)
}

// ListComments returns a work item's comments oldest first.
func (s *Service) ListComments(ctx context.Context, orgID, itemID uuid.UUID) ([]CommentView, error) {
	if _, err := s.find(ctx, orgID, itemID); err != nil {
		return nil, err
	}

	var comments []models.WorkItemComment
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("work_item_id = ?", itemID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{
			ID:         c.ID,
			WorkItemID: c.WorkItemID,
			AuthorID:   c.AuthorID,
			Body:       c.Body,
			CreatedAt:  c.CreatedAt,
		}
		if c.Author != nil {
			views[i].AuthorName = c.Author.DisplayName
		}
	}
	return views, nil
}

// AddComment appends a comment authored by the caller.
func (s *Service) AddComment(ctx context.Context, orgID, callerID, itemID uuid.UUID, body string) (*CommentView, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.Validation("Comment body is required.")
	}

	if _, err := s.find(ctx, orgID, itemID); err != nil {
		return nil, err
	}

	comment := models.WorkItemComment{
		WorkItemID: itemID,
		AuthorID:   callerID,
		Body:       body,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}

	var author models.User
	view := CommentView{
		ID:         comment.ID,
		WorkItemID: comment.WorkItemID,
		AuthorID:   comment.AuthorID,
		Body:       comment.Body,
		CreatedAt:  comment.CreatedAt,
	}
	if err := s.db.WithContext(ctx).First(&author, "id = ?", callerID).Error; err == nil {
		view.AuthorName = author.DisplayName
	}
	return &view, nil
}

func (s *Service) find(ctx context.Context, orgID, itemID uuid.UUID) (*models.WorkItem, error) {
	var item models.WorkItem
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", itemID, orgID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Task not found.")
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) assigneeInOrg(ctx context.Context, orgID, assigneeID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND organization_id = ?", assigneeID, orgID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("Member not found.")
	}
	return nil
}

// loadView re-reads the assignee so the response carries current name/email.
func (s *Service) loadView(ctx context.Context, item *models.WorkItem) (*ItemView, error) {
	if item.AssigneeID != nil && item.Assignee == nil {
		var assignee models.User
		if err := s.db.WithContext(ctx).First(&assignee, "id = ?", *item.AssigneeID).Error; err == nil {
			item.Assignee = &assignee
		}
	}
	view := itemToView(item)
	return &view, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
