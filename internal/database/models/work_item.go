package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkItemStatus is ordered: the numeric value drives both board column
// order and the default listing sort.
type WorkItemStatus int

const (
	StatusBacklog    WorkItemStatus = 1
	StatusTodo       WorkItemStatus = 2
	StatusInProgress WorkItemStatus = 3
	StatusInReview   WorkItemStatus = 4
	StatusDone       WorkItemStatus = 5
)

func (s WorkItemStatus) String() string {
	switch s {
	case StatusBacklog:
		return "Backlog"
	case StatusTodo:
		return "Todo"
	case StatusInProgress:
		return "InProgress"
	case StatusInReview:
		return "InReview"
	case StatusDone:
		return "Done"
	}
	return "Unknown"
}

func (s WorkItemStatus) Valid() bool {
	return s >= StatusBacklog && s <= StatusDone
}

// WorkItemPriority is ordered Low..Critical; used for sort and display only.
type WorkItemPriority int

const (
	PriorityLow      WorkItemPriority = 1
	PriorityMedium   WorkItemPriority = 2
	PriorityHigh     WorkItemPriority = 3
	PriorityCritical WorkItemPriority = 4
)

func (p WorkItemPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

type WorkItem struct {
	Base
	OrganizationID uuid.UUID        `gorm:"type:uuid;index;not null" json:"organization_id"`
	ProjectID      uuid.UUID        `gorm:"type:uuid;index;not null" json:"project_id"`
	AssigneeID     *uuid.UUID       `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	Title          string           `gorm:"not null" json:"title"`
	Description    *string          `json:"description,omitempty"`
	Status         WorkItemStatus   `gorm:"not null;index;default:1" json:"status"`
	Priority       WorkItemPriority `gorm:"not null;default:2" json:"priority"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
	StoryPoints    int              `gorm:"default:0" json:"story_points"`

	// Relationships
	Organization *Organization     `gorm:"foreignKey:OrganizationID" json:"-"`
	Project      *Project          `gorm:"foreignKey:ProjectID" json:"-"`
	Assignee     *User             `gorm:"foreignKey:AssigneeID" json:"-"`
	Comments     []WorkItemComment `gorm:"foreignKey:WorkItemID" json:"-"`
}

func (WorkItem) TableName() string {
	return "work_items"
}

type WorkItemComment struct {
	Base
	WorkItemID uuid.UUID `gorm:"type:uuid;index;not null" json:"work_item_id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Body       string    `gorm:"type:text;not null" json:"body"`

	WorkItem *WorkItem `gorm:"foreignKey:WorkItemID" json:"-"`
	Author   *User     `gorm:"foreignKey:AuthorID" json:"-"`
}

func (WorkItemComment) TableName() string {
	return "work_item_comments"
}
