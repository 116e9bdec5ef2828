package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goal-tracker-api/internal/repository"
	"goal-tracker-api/internal/response"
)

// LifecycleService executes the three destructive operations of the domain.
// Nothing is ever hard-deleted: boards and categories flip is_deleted, goals
// transition to archived. Each operation runs in one transaction so readers
// never observe a half-applied cascade, and each is idempotent.
//
// Authorization happens before these are called; the lifecycle layer only
// propagates state.
type LifecycleService interface {
	DeleteBoard(ctx context.Context, boardID uuid.UUID) error
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	ArchiveGoal(ctx context.Context, goalID uuid.UUID) error
}

// lifecycleServiceImpl is the implementation of LifecycleService
type lifecycleServiceImpl struct {
	tx           repository.TxRunner
	boardRepo    repository.BoardRepository
	categoryRepo repository.CategoryRepository
	goalRepo     repository.GoalRepository
	logger       *zap.Logger
}

// NewLifecycleService creates a new instance of LifecycleService
func NewLifecycleService(
	tx repository.TxRunner,
	boardRepo repository.BoardRepository,
	categoryRepo repository.CategoryRepository,
	goalRepo repository.GoalRepository,
	logger *zap.Logger,
) LifecycleService {
	return &lifecycleServiceImpl{
		tx:           tx,
		boardRepo:    boardRepo,
		categoryRepo: categoryRepo,
		goalRepo:     goalRepo,
		logger:       logger,
	}
}

// DeleteBoard soft-deletes the board, soft-deletes every category it owns and
// archives every goal under it. Goals are archived by board id in one pass,
// not re-derived per category.
func (s *lifecycleServiceImpl) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	err := s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.boardRepo.MarkDeleted(ctx, boardID); err != nil {
			return err
		}
		if err := s.goalRepo.ArchiveByBoard(ctx, boardID); err != nil {
			return err
		}
		return s.categoryRepo.MarkDeletedByBoard(ctx, boardID)
	})
	if err != nil {
		s.logger.Error("Failed to delete board",
			zap.String("board_id", boardID.String()),
			zap.Error(err),
		)
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	s.logger.Info("Board deleted", zap.String("board_id", boardID.String()))
	return nil
}

// DeleteCategory soft-deletes the category and archives every goal in it.
// Goals in sibling categories are unaffected.
func (s *lifecycleServiceImpl) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	err := s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.categoryRepo.MarkDeleted(ctx, categoryID); err != nil {
			return err
		}
		return s.goalRepo.ArchiveByCategory(ctx, categoryID)
	})
	if err != nil {
		s.logger.Error("Failed to delete category",
			zap.String("category_id", categoryID.String()),
			zap.Error(err),
		)
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete category", err.Error())
	}

	s.logger.Info("Category deleted", zap.String("category_id", categoryID.String()))
	return nil
}

// ArchiveGoal sets the goal's status to archived. Single-row write.
func (s *lifecycleServiceImpl) ArchiveGoal(ctx context.Context, goalID uuid.UUID) error {
	if err := s.goalRepo.Archive(ctx, goalID); err != nil {
		s.logger.Error("Failed to archive goal",
			zap.String("goal_id", goalID.String()),
			zap.Error(err),
		)
		return response.NewAppError(response.ErrCodeInternal, "Failed to archive goal", err.Error())
	}

	s.logger.Info("Goal archived", zap.String("goal_id", goalID.String()))
	return nil
}
