package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectRole string

const (
	ProjectRoleManager     ProjectRole = "manager"
	ProjectRoleContributor ProjectRole = "contributor"
)

type Project struct {
	Base
	OrganizationID uuid.UUID  `gorm:"type:uuid;index;not null" json:"organization_id"`
	Name           string     `gorm:"not null" json:"name"`
	Description    *string    `json:"description,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	IsCompleted    bool       `gorm:"default:false;index" json:"is_completed"`

	// Relationships
	Organization *Organization   `gorm:"foreignKey:OrganizationID" json:"-"`
	Members      []ProjectMember `gorm:"foreignKey:ProjectID" json:"-"`
	WorkItems    []WorkItem      `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectMember joins a user to a project with a project-level role.
// The creating user is bound as manager at project creation.
type ProjectMember struct {
	Base
	ProjectID uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_project_members_project_user;not null" json:"project_id"`
	UserID    uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_project_members_project_user;not null" json:"user_id"`
	Role      ProjectRole `gorm:"not null;default:'contributor'" json:"role"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
