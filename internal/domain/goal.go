package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GoalStatus represents the lifecycle state of a goal.
// Archived is the terminal state and stands in for deletion:
// goals are never physically removed.
type GoalStatus string

const (
	GoalStatusToDo       GoalStatus = "to_do"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusDone       GoalStatus = "done"
	GoalStatusArchived   GoalStatus = "archived"
)

// Valid reports whether s is a known goal status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusToDo, GoalStatusInProgress, GoalStatusDone, GoalStatusArchived:
		return true
	}
	return false
}

// GoalPriority represents the priority of a goal
type GoalPriority string

const (
	GoalPriorityLow      GoalPriority = "low"
	GoalPriorityMedium   GoalPriority = "medium"
	GoalPriorityHigh     GoalPriority = "high"
	GoalPriorityCritical GoalPriority = "critical"
)

// Valid reports whether p is a known goal priority.
func (p GoalPriority) Valid() bool {
	switch p {
	case GoalPriorityLow, GoalPriorityMedium, GoalPriorityHigh, GoalPriorityCritical:
		return true
	}
	return false
}

// Goal is a trackable item belonging to one goal category.
// UserID is the author; goal edits are gated on authorship, not board role.
type Goal struct {
	BaseModel
	CategoryID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_goals_category_id" json:"category_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_goals_user_id" json:"user_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Status       GoalStatus     `gorm:"type:varchar(20);not null;default:'to_do';index:idx_goals_status" json:"status"`
	Priority     GoalPriority   `gorm:"type:varchar(20);not null;default:'medium';index:idx_goals_priority" json:"priority"`
	DueDate      *time.Time     `gorm:"type:timestamp;index:idx_goals_due_date" json:"due_date"`
	CustomFields datatypes.JSON `gorm:"type:jsonb" json:"custom_fields"`
	Category     GoalCategory   `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Comments     []GoalComment  `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	// Attachments reference goals polymorphically, resolved in the repository
	Attachments []Attachment `gorm:"-" json:"attachments,omitempty"`
}

// TableName specifies the table name for Goal
func (Goal) TableName() string {
	return "goals"
}
