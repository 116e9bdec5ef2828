package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-tracker-api/internal/domain"
)

// GoalFilter narrows a goal listing. Slice and pointer fields with zero
// values impose no constraint. The filter set mirrors the list endpoint's
// query parameters: due-date bounds plus category/status/priority sets.
type GoalFilter struct {
	CategoryIDs []uuid.UUID
	Statuses    []domain.GoalStatus
	Priorities  []domain.GoalPriority
	DueBefore   *time.Time
	DueAfter    *time.Time
	Search      string // matches title or description
	OrderBy     string // "title" or "created", default title
	Desc        bool
	Limit       int
	Offset      int
}

// GoalRepository defines the interface for goal data access
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)
	FindVisible(ctx context.Context, userID uuid.UUID, filter GoalFilter) ([]*domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Archive(ctx context.Context, id uuid.UUID) error
	ArchiveByCategory(ctx context.Context, categoryID uuid.UUID) error
	ArchiveByBoard(ctx context.Context, boardID uuid.UUID) error
	CountActive(ctx context.Context) (int64, error)
}

// goalRepositoryImpl is the GORM implementation of GoalRepository
type goalRepositoryImpl struct {
	db *gorm.DB
}

// NewGoalRepository creates a new instance of GoalRepository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepositoryImpl{db: db}
}

// Create creates a new goal
func (r *goalRepositoryImpl) Create(ctx context.Context, goal *domain.Goal) error {
	return conn(ctx, r.db).Create(goal).Error
}

// FindByID finds a goal by id with its category and board preloaded.
// Archived goals are returned: callers decide whether archived state is
// visible for the operation at hand.
func (r *goalRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	var goal domain.Goal
	if err := conn(ctx, r.db).
		Preload("Category").
		Preload("Category.Board").
		Where("id = ?", id).
		First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindVisible lists goals on boards the user participates in, excluding
// archived ones. Both constraints are applied at the query level.
func (r *goalRepositoryImpl) FindVisible(ctx context.Context, userID uuid.UUID, filter GoalFilter) ([]*domain.Goal, error) {
	q := conn(ctx, r.db).
		Model(&domain.Goal{}).
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
		Joins("JOIN board_participants ON board_participants.board_id = goal_categories.board_id").
		Where("board_participants.user_id = ?", userID).
		Where("goals.status <> ?", domain.GoalStatusArchived)

	if len(filter.CategoryIDs) > 0 {
		q = q.Where("goals.category_id IN ?", filter.CategoryIDs)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("goals.status IN ?", filter.Statuses)
	}
	if len(filter.Priorities) > 0 {
		q = q.Where("goals.priority IN ?", filter.Priorities)
	}
	if filter.DueBefore != nil {
		q = q.Where("goals.due_date <= ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		q = q.Where("goals.due_date >= ?", *filter.DueAfter)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("LOWER(goals.title) LIKE LOWER(?) OR LOWER(goals.description) LIKE LOWER(?)", pattern, pattern)
	}

	column := "goals.title"
	if filter.OrderBy == "created" {
		column = "goals.created_at"
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

	var goals []*domain.Goal
	if err := q.Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// Update saves the full goal row
func (r *goalRepositoryImpl) Update(ctx context.Context, goal *domain.Goal) error {
	return conn(ctx, r.db).Save(goal).Error
}

// Archive sets a single goal's status to archived. Idempotent.
func (r *goalRepositoryImpl) Archive(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).
		Model(&domain.Goal{}).
		Where("id = ?", id).
		Update("status", domain.GoalStatusArchived).Error
}

// ArchiveByCategory archives every goal in the category
func (r *goalRepositoryImpl) ArchiveByCategory(ctx context.Context, categoryID uuid.UUID) error {
	return conn(ctx, r.db).
		Model(&domain.Goal{}).
		Where("category_id = ?", categoryID).
		Update("status", domain.GoalStatusArchived).Error
}

// ArchiveByBoard archives every goal whose category belongs to the board.
// One subquery update, not a pass per category.
func (r *goalRepositoryImpl) ArchiveByBoard(ctx context.Context, boardID uuid.UUID) error {
	db := conn(ctx, r.db)
	sub := db.Session(&gorm.Session{NewDB: true}).
		Model(&domain.GoalCategory{}).
		Select("id").
		Where("board_id = ?", boardID)
	return db.
		Model(&domain.Goal{}).
		Where("category_id IN (?)", sub).
		Update("status", domain.GoalStatusArchived).Error
}

// CountActive counts goals not in archived status
func (r *goalRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&domain.Goal{}).
		Where("status <> ?", domain.GoalStatusArchived).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
