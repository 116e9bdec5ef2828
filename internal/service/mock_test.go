package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-tracker-api/internal/domain"
	"goal-tracker-api/internal/repository"
)

// MockTxRunner runs the function directly, without a real transaction
type MockTxRunner struct {
	RunAtomicFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *MockTxRunner) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunAtomicFunc != nil {
		return m.RunAtomicFunc(ctx, fn)
	}
	return fn(ctx)
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc            func(ctx context.Context, board *domain.Board) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByParticipantFunc func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Board, error)
	UpdateTitleFunc       func(ctx context.Context, id uuid.UUID, title string) error
	MarkDeletedFunc       func(ctx context.Context, id uuid.UUID) error
	CountLiveFunc         func(ctx context.Context) (int64, error)
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockBoardRepository) FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Board, error) {
	if m.FindByParticipantFunc != nil {
		return m.FindByParticipantFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *MockBoardRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	if m.UpdateTitleFunc != nil {
		return m.UpdateTitleFunc(ctx, id, title)
	}
	return nil
}

func (m *MockBoardRepository) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	if m.MarkDeletedFunc != nil {
		return m.MarkDeletedFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) CountLive(ctx context.Context) (int64, error) {
	if m.CountLiveFunc != nil {
		return m.CountLiveFunc(ctx)
	}
	return 0, nil
}

// MockParticipantRepository is a mock implementation of ParticipantRepository
type MockParticipantRepository struct {
	CreateFunc             func(ctx context.Context, participant *domain.BoardParticipant) error
	FindByBoardIDFunc      func(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardParticipant, error)
	FindByBoardAndUserFunc func(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardParticipant, error)
	UpdateRoleFunc         func(ctx context.Context, id uuid.UUID, role domain.Role) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
}

func (m *MockParticipantRepository) Create(ctx context.Context, participant *domain.BoardParticipant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, participant)
	}
	return nil
}

func (m *MockParticipantRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardParticipant, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockParticipantRepository) FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardParticipant, error) {
	if m.FindByBoardAndUserFunc != nil {
		return m.FindByBoardAndUserFunc(ctx, boardID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockParticipantRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil
}

func (m *MockParticipantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	CreateFunc             func(ctx context.Context, category *domain.GoalCategory) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error)
	FindVisibleFunc        func(ctx context.Context, userID uuid.UUID, filter repository.CategoryFilter) ([]*domain.GoalCategory, error)
	UpdateTitleFunc        func(ctx context.Context, id uuid.UUID, title string) error
	MarkDeletedFunc        func(ctx context.Context, id uuid.UUID) error
	MarkDeletedByBoardFunc func(ctx context.Context, boardID uuid.UUID) error
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.GoalCategory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCategoryRepository) FindVisible(ctx context.Context, userID uuid.UUID, filter repository.CategoryFilter) ([]*domain.GoalCategory, error) {
	if m.FindVisibleFunc != nil {
		return m.FindVisibleFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockCategoryRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	if m.UpdateTitleFunc != nil {
		return m.UpdateTitleFunc(ctx, id, title)
	}
	return nil
}

func (m *MockCategoryRepository) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	if m.MarkDeletedFunc != nil {
		return m.MarkDeletedFunc(ctx, id)
	}
	return nil
}

func (m *MockCategoryRepository) MarkDeletedByBoard(ctx context.Context, boardID uuid.UUID) error {
	if m.MarkDeletedByBoardFunc != nil {
		return m.MarkDeletedByBoardFunc(ctx, boardID)
	}
	return nil
}

// MockGoalRepository is a mock implementation of GoalRepository
type MockGoalRepository struct {
	CreateFunc            func(ctx context.Context, goal *domain.Goal) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Goal, error)
	FindVisibleFunc       func(ctx context.Context, userID uuid.UUID, filter repository.GoalFilter) ([]*domain.Goal, error)
	UpdateFunc            func(ctx context.Context, goal *domain.Goal) error
	ArchiveFunc           func(ctx context.Context, id uuid.UUID) error
	ArchiveByCategoryFunc func(ctx context.Context, categoryID uuid.UUID) error
	ArchiveByBoardFunc    func(ctx context.Context, boardID uuid.UUID) error
	CountActiveFunc       func(ctx context.Context) (int64, error)
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, goal)
	}
	return nil
}

func (m *MockGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockGoalRepository) FindVisible(ctx context.Context, userID uuid.UUID, filter repository.GoalFilter) ([]*domain.Goal, error) {
	if m.FindVisibleFunc != nil {
		return m.FindVisibleFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, goal)
	}
	return nil
}

func (m *MockGoalRepository) Archive(ctx context.Context, id uuid.UUID) error {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id)
	}
	return nil
}

func (m *MockGoalRepository) ArchiveByCategory(ctx context.Context, categoryID uuid.UUID) error {
	if m.ArchiveByCategoryFunc != nil {
		return m.ArchiveByCategoryFunc(ctx, categoryID)
	}
	return nil
}

func (m *MockGoalRepository) ArchiveByBoard(ctx context.Context, boardID uuid.UUID) error {
	if m.ArchiveByBoardFunc != nil {
		return m.ArchiveByBoardFunc(ctx, boardID)
	}
	return nil
}

func (m *MockGoalRepository) CountActive(ctx context.Context) (int64, error) {
	if m.CountActiveFunc != nil {
		return m.CountActiveFunc(ctx)
	}
	return 0, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc     func(ctx context.Context, comment *domain.GoalComment) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.GoalComment, error)
	FindByGoalFunc func(ctx context.Context, goalID uuid.UUID, limit, offset int) ([]*domain.GoalComment, error)
	UpdateTextFunc func(ctx context.Context, id uuid.UUID, text string) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.GoalComment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalComment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCommentRepository) FindByGoal(ctx context.Context, goalID uuid.UUID, limit, offset int) ([]*domain.GoalComment, error) {
	if m.FindByGoalFunc != nil {
		return m.FindByGoalFunc(ctx, goalID, limit, offset)
	}
	return nil, nil
}

func (m *MockCommentRepository) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	if m.UpdateTextFunc != nil {
		return m.UpdateTextFunc(ctx, id, text)
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc             func(ctx context.Context, attachment *domain.Attachment) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByIDsFunc          func(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error)
	FindByGoalIDFunc       func(ctx context.Context, goalID uuid.UUID) ([]*domain.Attachment, error)
	ConfirmAttachmentsFunc func(ctx context.Context, ids []uuid.UUID, goalID uuid.UUID) error
	FindExpiredTempFunc    func(ctx context.Context) ([]*domain.Attachment, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	DeleteByIDsFunc        func(ctx context.Context, ids []uuid.UUID) error
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockAttachmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByGoalIDFunc != nil {
		return m.FindByGoalIDFunc(ctx, goalID)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) ConfirmAttachments(ctx context.Context, ids []uuid.UUID, goalID uuid.UUID) error {
	if m.ConfirmAttachmentsFunc != nil {
		return m.ConfirmAttachmentsFunc(ctx, ids, goalID)
	}
	return nil
}

func (m *MockAttachmentRepository) FindExpiredTemp(ctx context.Context) ([]*domain.Attachment, error) {
	if m.FindExpiredTempFunc != nil {
		return m.FindExpiredTempFunc(ctx)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if m.DeleteByIDsFunc != nil {
		return m.DeleteByIDsFunc(ctx, ids)
	}
	return nil
}

// MockUserDirectory is a mock implementation of UserDirectory
type MockUserDirectory struct {
	UserExistsFunc func(ctx context.Context, userID uuid.UUID) (bool, error)
}

func (m *MockUserDirectory) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.UserExistsFunc != nil {
		return m.UserExistsFunc(ctx, userID)
	}
	return true, nil
}

// MockLifecycleService is a mock implementation of LifecycleService
type MockLifecycleService struct {
	DeleteBoardFunc    func(ctx context.Context, boardID uuid.UUID) error
	DeleteCategoryFunc func(ctx context.Context, categoryID uuid.UUID) error
	ArchiveGoalFunc    func(ctx context.Context, goalID uuid.UUID) error
}

func (m *MockLifecycleService) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, boardID)
	}
	return nil
}

func (m *MockLifecycleService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if m.DeleteCategoryFunc != nil {
		return m.DeleteCategoryFunc(ctx, categoryID)
	}
	return nil
}

func (m *MockLifecycleService) ArchiveGoal(ctx context.Context, goalID uuid.UUID) error {
	if m.ArchiveGoalFunc != nil {
		return m.ArchiveGoalFunc(ctx, goalID)
	}
	return nil
}
