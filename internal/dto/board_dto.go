package dto

import (
	"time"

	"github.com/google/uuid"

	"goal-tracker-api/internal/domain"
)

// CreateBoardRequest represents the request to create a board.
// The requester becomes the board's owner participant automatically.
type CreateBoardRequest struct {
	Title string `json:"title" binding:"required,max=255" example:"Sprint 12"`
}

// ParticipantEntry is one entry of a desired participant set.
// The owner role is not assignable through this path; entries naming the
// acting owner are ignored by the reconciler.
type ParticipantEntry struct {
	UserID uuid.UUID   `json:"userId" binding:"required" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Role   domain.Role `json:"role" binding:"required,oneof=writer reader" example:"writer"`
}

// UpdateBoardRequest represents the request to update a board.
// A nil Participants field leaves the participant set untouched; a non-nil
// (possibly empty) one is reconciled against the current set.
type UpdateBoardRequest struct {
	Title        *string            `json:"title,omitempty" binding:"omitempty,max=255"`
	Participants *[]ParticipantEntry `json:"participants,omitempty" binding:"omitempty,dive"`
}

// ParticipantResponse represents one participant of a board
type ParticipantResponse struct {
	ID        uuid.UUID   `json:"id"`
	BoardID   uuid.UUID   `json:"boardId"`
	UserID    uuid.UUID   `json:"userId"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// BoardResponse represents the board response
type BoardResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BoardDetailResponse is a board with its participant list
type BoardDetailResponse struct {
	BoardResponse
	Participants []ParticipantResponse `json:"participants"`
}

// ListQuery carries limit/offset pagination for list endpoints
type ListQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
