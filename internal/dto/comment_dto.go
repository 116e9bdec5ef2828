package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to comment on a goal
type CreateCommentRequest struct {
	GoalID uuid.UUID `json:"goalId" binding:"required"`
	Text   string    `json:"text" binding:"required,max=4000"`
}

// UpdateCommentRequest represents the request to edit a comment
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// CommentListQuery carries the comment list endpoint's query parameters
type CommentListQuery struct {
	GoalID uuid.UUID `form:"goalId,parser=encoding.TextUnmarshaler" binding:"required"`
	Limit  int       `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int       `form:"offset" binding:"omitempty,min=0"`
}

// CommentResponse represents the comment response
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	GoalID    uuid.UUID `json:"goalId"`
	UserID    uuid.UUID `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
