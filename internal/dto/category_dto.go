package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCategoryRequest represents the request to create a goal category
type CreateCategoryRequest struct {
	BoardID uuid.UUID `json:"boardId" binding:"required"`
	Title   string    `json:"title" binding:"required,max=255" example:"Backlog"`
}

// UpdateCategoryRequest represents the request to rename a category
type UpdateCategoryRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// CategoryListQuery carries the category list endpoint's query parameters
type CategoryListQuery struct {
	BoardID *uuid.UUID `form:"board,parser=encoding.TextUnmarshaler" binding:"omitempty"`
	Search  string     `form:"search" binding:"omitempty,max=255"`
	OrderBy string     `form:"orderBy" binding:"omitempty,oneof=title created"`
	Desc    bool       `form:"desc"`
	Limit   int        `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset  int        `form:"offset" binding:"omitempty,min=0"`
}

// CategoryResponse represents the category response
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"boardId"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
