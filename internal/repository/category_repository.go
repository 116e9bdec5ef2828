package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-tracker-api/internal/domain"
)

// CategoryFilter narrows a category listing. Zero values mean "no constraint".
type CategoryFilter struct {
	BoardID *uuid.UUID
	Search  string // case-insensitive substring match on title
	OrderBy string // "title" or "created", default title
	Desc    bool
	Limit   int
	Offset  int
}

// CategoryRepository defines the interface for goal category data access.
// FindVisible filters soft-deleted categories out; FindByID returns them
// for the authorization layer to judge.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.GoalCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error)
	FindVisible(ctx context.Context, userID uuid.UUID, filter CategoryFilter) ([]*domain.GoalCategory, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
	MarkDeleted(ctx context.Context, id uuid.UUID) error
	MarkDeletedByBoard(ctx context.Context, boardID uuid.UUID) error
}

// categoryRepositoryImpl is the GORM implementation of CategoryRepository
type categoryRepositoryImpl struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepositoryImpl{db: db}
}

// Create creates a new goal category
func (r *categoryRepositoryImpl) Create(ctx context.Context, category *domain.GoalCategory) error {
	return conn(ctx, r.db).Create(category).Error
}

// FindByID finds a category by id with its owning board preloaded
func (r *categoryRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
	var category domain.GoalCategory
	if err := conn(ctx, r.db).
		Preload("Board").
		Where("id = ?", id).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindVisible lists the live categories on live boards the user participates
// in. Deleted and foreign categories are filtered out, not reported as errors.
func (r *categoryRepositoryImpl) FindVisible(ctx context.Context, userID uuid.UUID, filter CategoryFilter) ([]*domain.GoalCategory, error) {
	q := conn(ctx, r.db).
		Model(&domain.GoalCategory{}).
		Joins("JOIN boards ON boards.id = goal_categories.board_id").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", userID).
		Where("goal_categories.is_deleted = ? AND boards.is_deleted = ?", false, false)

	if filter.BoardID != nil {
		q = q.Where("goal_categories.board_id = ?", *filter.BoardID)
	}
	if filter.Search != "" {
		q = q.Where("LOWER(goal_categories.title) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	column := "goal_categories.title"
	if filter.OrderBy == "created" {
		column = "goal_categories.created_at"
	}
	direction := " ASC"
	if filter.Desc {
		direction = " DESC"
	}
	q = q.Order(column + direction)

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var categories []*domain.GoalCategory
	if err := q.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateTitle updates a category's title
func (r *categoryRepositoryImpl) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	return conn(ctx, r.db).
		Model(&domain.GoalCategory{}).
		Where("id = ?", id).
		Update("title", title).Error
}

// MarkDeleted flags a category as deleted
func (r *categoryRepositoryImpl) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).
		Model(&domain.GoalCategory{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// MarkDeletedByBoard flags every category owned by the board as deleted
func (r *categoryRepositoryImpl) MarkDeletedByBoard(ctx context.Context, boardID uuid.UUID) error {
	return conn(ctx, r.db).
		Model(&domain.GoalCategory{}).
		Where("board_id = ?", boardID).
		Update("is_deleted", true).Error
}
