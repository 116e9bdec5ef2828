package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-tracker-api/internal/domain"
)

// BoardRepository defines the interface for board data access.
// Boards are soft-deleted only; list queries filter deleted boards out,
// FindByID returns them for the authorization layer to judge.
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Board, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
	MarkDeleted(ctx context.Context, id uuid.UUID) error
	CountLive(ctx context.Context) (int64, error)
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// Create creates a new board
func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	return conn(ctx, r.db).Create(board).Error
}

// FindByID finds a board by id, with its participant list preloaded.
// Soft-deleted boards are returned: liveness is the authorization
// table's concern, not the lookup's.
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := conn(ctx, r.db).
		Preload("Participants").
		Where("id = ?", id).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByParticipant finds the live boards the user participates in,
// ordered by title.
func (r *boardRepositoryImpl) FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Board, error) {
	var boards []*domain.Board
	q := conn(ctx, r.db).
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ? AND boards.is_deleted = ?", userID, false).
		Order("boards.title ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// UpdateTitle updates a board's title
func (r *boardRepositoryImpl) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	return conn(ctx, r.db).
		Model(&domain.Board{}).
		Where("id = ?", id).
		Update("title", title).Error
}

// MarkDeleted flags a board as deleted. Idempotent: flagging an already
// deleted board is a redundant write, not an error.
func (r *boardRepositoryImpl) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).
		Model(&domain.Board{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// CountLive counts boards that are not soft-deleted
func (r *boardRepositoryImpl) CountLive(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&domain.Board{}).
		Where("is_deleted = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
