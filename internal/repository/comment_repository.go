package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-tracker-api/internal/domain"
)

// CommentRepository defines the interface for goal comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.GoalComment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalComment, error)
	FindByGoal(ctx context.Context, goalID uuid.UUID, limit, offset int) ([]*domain.GoalComment, error)
	UpdateText(ctx context.Context, id uuid.UUID, text string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create creates a new comment
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.GoalComment) error {
	return conn(ctx, r.db).Create(comment).Error
}

// FindByID finds a comment by id with the goal chain preloaded up to the board
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalComment, error) {
	var comment domain.GoalComment
	if err := conn(ctx, r.db).
		Preload("Goal").
		Preload("Goal.Category").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByGoal lists a goal's comments, newest first
func (r *commentRepositoryImpl) FindByGoal(ctx context.Context, goalID uuid.UUID, limit, offset int) ([]*domain.GoalComment, error) {
	q := conn(ctx, r.db).
		Where("goal_id = ?", goalID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var comments []*domain.GoalComment
	if err := q.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateText updates a comment's text
func (r *commentRepositoryImpl) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	return conn(ctx, r.db).
		Model(&domain.GoalComment{}).
		Where("id = ?", id).
		Update("text", text).Error
}

// Delete removes a comment row. Comments carry no soft-delete
// representation; removal is a plain delete.
func (r *commentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).
		Where("id = ?", id).
		Delete(&domain.GoalComment{}).Error
}
