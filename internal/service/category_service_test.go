package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-tracker-api/internal/domain"
	"goal-tracker-api/internal/dto"
	"goal-tracker-api/internal/response"
)

func liveCategory(boardID, creatorID uuid.UUID) *domain.GoalCategory {
	return &domain.GoalCategory{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		BoardID:   boardID,
		UserID:    creatorID,
		Title:     "Backlog",
		Board:     domain.Board{BaseModel: domain.BaseModel{ID: boardID}},
	}
}

func TestCategoryService_CreateCategory(t *testing.T) {
	writer := uuid.New()
	boardID := uuid.New()

	boardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: boardID}, Title: "b"}, nil
		},
	}
	var created *domain.GoalCategory
	categoryRepo := &MockCategoryRepository{
		CreateFunc: func(ctx context.Context, c *domain.GoalCategory) error {
			created = c
			return nil
		},
	}
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{writer: domain.RoleWriter}),
	}

	svc := NewCategoryService(boardRepo, categoryRepo, testRoleResolver(participantRepo),
		&MockLifecycleService{}, zap.NewNop())

	resp, err := svc.CreateCategory(authedContext(writer), &dto.CreateCategoryRequest{BoardID: boardID, Title: "Backlog"})
	require.NoError(t, err)
	assert.Equal(t, "Backlog", resp.Title)
	require.NotNil(t, created)
	assert.Equal(t, writer, created.UserID)
}

func TestCategoryService_CreateCategory_ReaderDenied(t *testing.T) {
	reader := uuid.New()
	boardID := uuid.New()

	boardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: boardID}}, nil
		},
	}
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{reader: domain.RoleReader}),
	}

	svc := NewCategoryService(boardRepo, &MockCategoryRepository{}, testRoleResolver(participantRepo),
		&MockLifecycleService{}, zap.NewNop())

	_, err := svc.CreateCategory(authedContext(reader), &dto.CreateCategoryRequest{BoardID: boardID, Title: "x"})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeForbidden, appErrorCode(t, err))
}

func TestCategoryService_CreateCategory_DeadBoardIsValidationError(t *testing.T) {
	owner := uuid.New()
	boardID := uuid.New()

	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{owner: domain.RoleOwner}),
	}

	t.Run("missing board", func(t *testing.T) {
		boardRepo := &MockBoardRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewCategoryService(boardRepo, &MockCategoryRepository{}, testRoleResolver(participantRepo),
			&MockLifecycleService{}, zap.NewNop())

		_, err := svc.CreateCategory(authedContext(owner), &dto.CreateCategoryRequest{BoardID: boardID, Title: "x"})
		require.Error(t, err)
		assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
	})

	t.Run("deleted board", func(t *testing.T) {
		boardRepo := &MockBoardRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
				return &domain.Board{BaseModel: domain.BaseModel{ID: boardID}, IsDeleted: true}, nil
			},
		}
		svc := NewCategoryService(boardRepo, &MockCategoryRepository{}, testRoleResolver(participantRepo),
			&MockLifecycleService{}, zap.NewNop())

		_, err := svc.CreateCategory(authedContext(owner), &dto.CreateCategoryRequest{BoardID: boardID, Title: "x"})
		require.Error(t, err)
		assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
	})
}

func TestCategoryService_UpdateCategory_CreatorOnly(t *testing.T) {
	creator := uuid.New()
	writer := uuid.New()
	boardID := uuid.New()
	category := liveCategory(boardID, creator)

	categoryRepo := &MockCategoryRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
			return category, nil
		},
	}
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{
			creator: domain.RoleReader,
			writer:  domain.RoleWriter,
		}),
	}

	svc := NewCategoryService(&MockBoardRepository{}, categoryRepo, testRoleResolver(participantRepo),
		&MockLifecycleService{}, zap.NewNop())

	// A writer who did not create the category cannot rename it.
	_, err := svc.UpdateCategory(authedContext(writer), category.ID, &dto.UpdateCategoryRequest{Title: "new"})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeForbidden, appErrorCode(t, err))

	// The creator can, even holding only the reader role.
	resp, err := svc.UpdateCategory(authedContext(creator), category.ID, &dto.UpdateCategoryRequest{Title: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Title)
}

func TestCategoryService_DeleteCategory_CreatorOrWriter(t *testing.T) {
	creator := uuid.New()
	writer := uuid.New()
	reader := uuid.New()
	boardID := uuid.New()
	category := liveCategory(boardID, creator)

	categoryRepo := &MockCategoryRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
			return category, nil
		},
	}
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{
			creator: domain.RoleReader,
			writer:  domain.RoleWriter,
			reader:  domain.RoleReader,
		}),
	}
	var deleted []uuid.UUID
	lifecycle := &MockLifecycleService{
		DeleteCategoryFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = append(deleted, id)
			return nil
		},
	}

	svc := NewCategoryService(&MockBoardRepository{}, categoryRepo, testRoleResolver(participantRepo),
		lifecycle, zap.NewNop())

	require.NoError(t, svc.DeleteCategory(authedContext(creator), category.ID))
	require.NoError(t, svc.DeleteCategory(authedContext(writer), category.ID))
	assert.Len(t, deleted, 2)

	err := svc.DeleteCategory(authedContext(reader), category.ID)
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeForbidden, appErrorCode(t, err))
}

func TestCategoryService_GetCategory_DeletedLooksMissing(t *testing.T) {
	creator := uuid.New()
	boardID := uuid.New()
	category := liveCategory(boardID, creator)
	category.IsDeleted = true

	categoryRepo := &MockCategoryRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
			return category, nil
		},
	}
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{creator: domain.RoleOwner}),
	}

	svc := NewCategoryService(&MockBoardRepository{}, categoryRepo, testRoleResolver(participantRepo),
		&MockLifecycleService{}, zap.NewNop())

	_, err := svc.GetCategory(authedContext(creator), category.ID)
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeNotFound, appErrorCode(t, err))
}
