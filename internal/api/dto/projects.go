package dto

import (
	"strings"
	"time"
)

type CreateProjectRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (r CreateProjectRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		errors["name"] = "Name is required"
	}

	return errors
}

type ProjectResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	TotalTasks     int        `json:"total_tasks"`
	CompletedTasks int        `json:"completed_tasks"`
	IsCompleted    bool       `json:"is_completed"`
}

type CompletedProjectResponse struct {
	ProjectResponse
	DistinctAssignees int       `json:"distinct_assignees"`
	CompletedAt       time.Time `json:"completed_at"`
}
