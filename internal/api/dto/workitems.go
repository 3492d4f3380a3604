package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateWorkItemRequest struct {
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	Priority    int        `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	StoryPoints int        `json:"story_points,omitempty"`
}

func (r CreateWorkItemRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.ProjectID == "" {
		errors["project_id"] = "Project ID is required"
	} else if _, err := uuid.Parse(r.ProjectID); err != nil {
		errors["project_id"] = "Invalid project ID format"
	}
	if strings.TrimSpace(r.Title) == "" {
		errors["title"] = "Title is required"
	}
	if r.AssigneeID != nil && *r.AssigneeID != "" {
		if _, err := uuid.Parse(*r.AssigneeID); err != nil {
			errors["assignee_id"] = "Invalid assignee ID format"
		}
	}
	if r.Priority < 0 || r.Priority > 4 {
		errors["priority"] = "Priority must be between 1 (Low) and 4 (Critical)"
	}

	return errors
}

type UpdateWorkItemStatusRequest struct {
	Status int `json:"status"`
}

type UpdateWorkItemAssigneeRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

type AddCommentRequest struct {
	Body string `json:"body"`
}

func (r AddCommentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Body) == "" {
		errors["body"] = "Body is required"
	}

	return errors
}

type WorkItemResponse struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"project_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	Status        int        `json:"status"`
	Priority      int        `json:"priority"`
	AssigneeID    *string    `json:"assignee_id,omitempty"`
	AssigneeName  *string    `json:"assignee_name,omitempty"`
	AssigneeEmail *string    `json:"assignee_email,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	StoryPoints   int        `json:"story_points"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	WorkItemID string    `json:"work_item_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
