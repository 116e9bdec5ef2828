package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"goal-tracker-api/internal/domain"
)

// CreateGoalRequest represents the request to create a goal.
// Attachment ids reference TEMP uploads to confirm on creation.
type CreateGoalRequest struct {
	CategoryID    uuid.UUID              `json:"categoryId" binding:"required"`
	Title         string                 `json:"title" binding:"required,max=255" example:"Fix bug"`
	Description   string                 `json:"description" binding:"omitempty"`
	Status        domain.GoalStatus      `json:"status" binding:"omitempty,oneof=to_do in_progress done"`
	Priority      domain.GoalPriority    `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	DueDate       *time.Time             `json:"dueDate,omitempty"`
	CustomFields  map[string]interface{} `json:"customFields,omitempty"`
	AttachmentIDs []uuid.UUID            `json:"attachmentIds,omitempty" binding:"omitempty,max=10"`
}

// UpdateGoalRequest represents the request to update a goal. Archived is not
// an assignable status here; archiving goes through the delete operation.
type UpdateGoalRequest struct {
	Title         *string                `json:"title,omitempty" binding:"omitempty,max=255"`
	Description   *string                `json:"description,omitempty"`
	Status        *domain.GoalStatus     `json:"status,omitempty" binding:"omitempty,oneof=to_do in_progress done"`
	Priority      *domain.GoalPriority   `json:"priority,omitempty" binding:"omitempty,oneof=low medium high critical"`
	DueDate       *time.Time             `json:"dueDate,omitempty"`
	CustomFields  map[string]interface{} `json:"customFields,omitempty"`
	AttachmentIDs []uuid.UUID            `json:"attachmentIds,omitempty" binding:"omitempty,max=10"`
}

// GoalListQuery carries the goal list endpoint's query parameters.
// Repeated category/status/priority parameters form "in" sets.
type GoalListQuery struct {
	Categories []uuid.UUID           `form:"category,parser=encoding.TextUnmarshaler" binding:"omitempty"`
	Statuses   []domain.GoalStatus   `form:"status" binding:"omitempty,dive,oneof=to_do in_progress done"`
	Priorities []domain.GoalPriority `form:"priority" binding:"omitempty,dive,oneof=low medium high critical"`
	DueLTE     *time.Time            `form:"dueDateLte" time_format:"2006-01-02T15:04:05Z07:00"`
	DueGTE     *time.Time            `form:"dueDateGte" time_format:"2006-01-02T15:04:05Z07:00"`
	Search     string                `form:"search" binding:"omitempty,max=255"`
	OrderBy    string                `form:"orderBy" binding:"omitempty,oneof=title created"`
	Desc       bool                  `form:"desc"`
	Limit      int                   `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset     int                   `form:"offset" binding:"omitempty,min=0"`
}

// GoalResponse represents the goal response
type GoalResponse struct {
	ID           uuid.UUID            `json:"id"`
	CategoryID   uuid.UUID            `json:"categoryId"`
	UserID       uuid.UUID            `json:"userId"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Status       domain.GoalStatus    `json:"status"`
	Priority     domain.GoalPriority  `json:"priority"`
	DueDate      *time.Time           `json:"dueDate,omitempty"`
	CustomFields json.RawMessage      `json:"customFields,omitempty"`
	Attachments  []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}
