package models

import "github.com/google/uuid"

type UserRole string

const (
	RoleOwner  UserRole = "owner"
	RoleMember UserRole = "member"
)

type User struct {
	Base
	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organization_id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	FullName       string    `gorm:"not null" json:"full_name"`
	DisplayName    string    `json:"display_name"`
	Role           UserRole  `gorm:"not null;default:'member'" json:"role"`

	// Relationships
	Organization       *Organization   `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	ProjectMemberships []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
