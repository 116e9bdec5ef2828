package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-tracker-api/internal/access"
	"goal-tracker-api/internal/domain"
	"goal-tracker-api/internal/dto"
	"goal-tracker-api/internal/repository"
	"goal-tracker-api/internal/response"
)

// CategoryService defines the interface for goal category business logic
type CategoryService interface {
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, q dto.CategoryListQuery) ([]*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
}

// categoryServiceImpl is the implementation of CategoryService
type categoryServiceImpl struct {
	boardRepo    repository.BoardRepository
	categoryRepo repository.CategoryRepository
	roles        *RoleResolver
	lifecycle    LifecycleService
	logger       *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(
	boardRepo repository.BoardRepository,
	categoryRepo repository.CategoryRepository,
	roles *RoleResolver,
	lifecycle LifecycleService,
	logger *zap.Logger,
) CategoryService {
	return &categoryServiceImpl{
		boardRepo:    boardRepo,
		categoryRepo: categoryRepo,
		roles:        roles,
		lifecycle:    lifecycle,
		logger:       logger,
	}
}

// CreateCategory creates a category on a live board. Requires the writer
// role or better; a deleted target board is a validation failure, not a 403.
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	userID := userIDFromContext(ctx)

	board, err := s.boardRepo.FindByID(ctx, req.BoardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid boardId: board does not exist", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	role, err := s.roles.Resolve(ctx, board.ID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionCreate,
		Target: access.CategoryTarget{CreatorID: userID, BoardDeleted: board.IsDeleted},
	}); !d.Allowed {
		return nil, denyCreateError("boardId", d)
	}

	category := &domain.GoalCategory{
		BoardID: board.ID,
		UserID:  userID,
		Title:   req.Title,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category",
			zap.String("board_id", board.ID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create category", err.Error())
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("board_id", board.ID.String()),
	)
	return s.toCategoryResponse(category), nil
}

// GetCategory retrieves a single live category
func (s *categoryServiceImpl) GetCategory(ctx context.Context, categoryID uuid.UUID) (*dto.CategoryResponse, error) {
	userID := userIDFromContext(ctx)

	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.Resolve(ctx, category.BoardID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionRead,
		Target: categoryAccessTarget(category),
	}); !d.Allowed {
		return nil, denyError(d)
	}
	return s.toCategoryResponse(category), nil
}

// ListCategories lists live categories on live boards the requester
// participates in, optionally scoped to one board and filtered by title.
func (s *categoryServiceImpl) ListCategories(ctx context.Context, q dto.CategoryListQuery) ([]*dto.CategoryResponse, error) {
	userID := userIDFromContext(ctx)
	if userID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	}

	categories, err := s.categoryRepo.FindVisible(ctx, userID, repository.CategoryFilter{
		BoardID: q.BoardID,
		Search:  q.Search,
		OrderBy: q.OrderBy,
		Desc:    q.Desc,
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list categories", err.Error())
	}

	responses := make([]*dto.CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = s.toCategoryResponse(category)
	}
	return responses, nil
}

// UpdateCategory renames a category. Creator only, regardless of board role.
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	userID := userIDFromContext(ctx)

	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.Resolve(ctx, category.BoardID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionUpdate,
		Target: categoryAccessTarget(category),
	}); !d.Allowed {
		return nil, denyError(d)
	}

	if err := s.categoryRepo.UpdateTitle(ctx, category.ID, req.Title); err != nil {
		s.logger.Error("Failed to update category",
			zap.String("category_id", category.ID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update category", err.Error())
	}

	category.Title = req.Title
	return s.toCategoryResponse(category), nil
}

// DeleteCategory soft-deletes a category and archives its goals. Allowed for
// the category's creator or any board writer.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	userID := userIDFromContext(ctx)

	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	role, err := s.roles.Resolve(ctx, category.BoardID, userID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionDelete,
		Target: categoryAccessTarget(category),
	}); !d.Allowed {
		return denyError(d)
	}

	return s.lifecycle.DeleteCategory(ctx, category.ID)
}

func (s *categoryServiceImpl) findCategory(ctx context.Context, categoryID uuid.UUID) (*domain.GoalCategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Category not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch category", err.Error())
	}
	return category, nil
}

// categoryAccessTarget snapshots a category and its preloaded board for the
// decision table
func categoryAccessTarget(category *domain.GoalCategory) access.CategoryTarget {
	return access.CategoryTarget{
		CreatorID:    category.UserID,
		Deleted:      category.IsDeleted,
		BoardDeleted: category.Board.IsDeleted,
	}
}

// toCategoryResponse converts domain.GoalCategory to dto.CategoryResponse
func (s *categoryServiceImpl) toCategoryResponse(category *domain.GoalCategory) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        category.ID,
		BoardID:   category.BoardID,
		UserID:    category.UserID,
		Title:     category.Title,
		IsDeleted: category.IsDeleted,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
