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

func authedContext(userID uuid.UUID) context.Context {
	//nolint:staticcheck // string key mirrors what the auth middleware sets
	return context.WithValue(context.Background(), "user_id", userID)
}

func testRoleResolver(participantRepo *MockParticipantRepository) *RoleResolver {
	return NewRoleResolver(participantRepo, nil, zap.NewNop())
}

// participantLookup builds a FindByBoardAndUser func answering from a fixed
// user -> role map
func participantLookup(boardID uuid.UUID, roles map[uuid.UUID]domain.Role) func(ctx context.Context, b, u uuid.UUID) (*domain.BoardParticipant, error) {
	return func(ctx context.Context, b, u uuid.UUID) (*domain.BoardParticipant, error) {
		if b != boardID {
			return nil, gorm.ErrRecordNotFound
		}
		role, ok := roles[u]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		return &domain.BoardParticipant{
			BaseModel: domain.BaseModel{ID: uuid.New()},
			BoardID:   b,
			UserID:    u,
			Role:      role,
		}, nil
	}
}

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*response.AppError)
	require.True(t, ok, "expected *response.AppError, got %T: %v", err, err)
	return appErr.Code
}

func TestBoardService_CreateBoard(t *testing.T) {
	owner := uuid.New()
	boardRepo := &MockBoardRepository{}
	var createdParticipant *domain.BoardParticipant
	participantRepo := &MockParticipantRepository{
		CreateFunc: func(ctx context.Context, p *domain.BoardParticipant) error {
			createdParticipant = p
			return nil
		},
	}

	svc := NewBoardService(&MockTxRunner{}, boardRepo, participantRepo, &MockUserDirectory{},
		testRoleResolver(participantRepo), &MockLifecycleService{}, nil, zap.NewNop())

	resp, err := svc.CreateBoard(authedContext(owner), &dto.CreateBoardRequest{Title: "Q3 Goals"})
	require.NoError(t, err)
	assert.Equal(t, "Q3 Goals", resp.Title)

	require.NotNil(t, createdParticipant)
	assert.Equal(t, owner, createdParticipant.UserID)
	assert.Equal(t, domain.RoleOwner, createdParticipant.Role)
	require.Len(t, resp.Participants, 1)
	assert.Equal(t, domain.RoleOwner, resp.Participants[0].Role)
}

func TestBoardService_CreateBoard_Unauthenticated(t *testing.T) {
	participantRepo := &MockParticipantRepository{}
	svc := NewBoardService(&MockTxRunner{}, &MockBoardRepository{}, participantRepo, &MockUserDirectory{},
		testRoleResolver(participantRepo), &MockLifecycleService{}, nil, zap.NewNop())

	_, err := svc.CreateBoard(context.Background(), &dto.CreateBoardRequest{Title: "nope"})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeUnauthorized, appErrorCode(t, err))
}

func TestBoardService_GetBoard_DeletedLooksMissing(t *testing.T) {
	owner := uuid.New()
	boardID := uuid.New()

	boardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{
				BaseModel: domain.BaseModel{ID: boardID},
				Title:     "gone",
				IsDeleted: true,
			}, nil
		},
	}
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{owner: domain.RoleOwner}),
	}

	svc := NewBoardService(&MockTxRunner{}, boardRepo, participantRepo, &MockUserDirectory{},
		testRoleResolver(participantRepo), &MockLifecycleService{}, nil, zap.NewNop())

	// Even the owner sees a deleted board as not found, never as forbidden.
	_, err := svc.GetBoard(authedContext(owner), boardID)
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeNotFound, appErrorCode(t, err))
}

func TestBoardService_UpdateBoard_NonParticipant(t *testing.T) {
	boardID := uuid.New()
	boardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: boardID}, Title: "b"}, nil
		},
	}
	participantRepo := &MockParticipantRepository{}

	svc := NewBoardService(&MockTxRunner{}, boardRepo, participantRepo, &MockUserDirectory{},
		testRoleResolver(participantRepo), &MockLifecycleService{}, nil, zap.NewNop())

	title := "renamed"
	_, err := svc.UpdateBoard(authedContext(uuid.New()), boardID, &dto.UpdateBoardRequest{Title: &title})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeForbidden, appErrorCode(t, err))
}

func TestBoardService_UpdateBoard_ParticipantsNeedOwner(t *testing.T) {
	writer := uuid.New()
	boardID := uuid.New()

	boardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: boardID}, Title: "b"}, nil
		},
	}
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{writer: domain.RoleWriter}),
	}

	svc := NewBoardService(&MockTxRunner{}, boardRepo, participantRepo, &MockUserDirectory{},
		testRoleResolver(participantRepo), &MockLifecycleService{}, nil, zap.NewNop())

	desired := []dto.ParticipantEntry{{UserID: uuid.New(), Role: domain.RoleReader}}
	_, err := svc.UpdateBoard(authedContext(writer), boardID, &dto.UpdateBoardRequest{Participants: &desired})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeForbidden, appErrorCode(t, err))
}

func TestBoardService_UpdateBoard_Reconciliation(t *testing.T) {
	owner := uuid.New()
	removed := uuid.New()
	promoted := uuid.New()
	added := uuid.New()
	boardID := uuid.New()

	ownerRow := domain.BoardParticipant{BaseModel: domain.BaseModel{ID: uuid.New()}, BoardID: boardID, UserID: owner, Role: domain.RoleOwner}
	removedRow := domain.BoardParticipant{BaseModel: domain.BaseModel{ID: uuid.New()}, BoardID: boardID, UserID: removed, Role: domain.RoleWriter}
	promotedRow := domain.BoardParticipant{BaseModel: domain.BaseModel{ID: uuid.New()}, BoardID: boardID, UserID: promoted, Role: domain.RoleReader}

	boardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{
				BaseModel:    domain.BaseModel{ID: boardID},
				Title:        "b",
				Participants: []domain.BoardParticipant{ownerRow, removedRow, promotedRow},
			}, nil
		},
	}

	var deletedIDs []uuid.UUID
	var roleChanges []domain.Role
	var createdUsers []uuid.UUID
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{owner: domain.RoleOwner}),
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deletedIDs = append(deletedIDs, id)
			return nil
		},
		UpdateRoleFunc: func(ctx context.Context, id uuid.UUID, role domain.Role) error {
			assert.Equal(t, promotedRow.ID, id)
			roleChanges = append(roleChanges, role)
			return nil
		},
		CreateFunc: func(ctx context.Context, p *domain.BoardParticipant) error {
			createdUsers = append(createdUsers, p.UserID)
			return nil
		},
		FindByBoardIDFunc: func(ctx context.Context, b uuid.UUID) ([]*domain.BoardParticipant, error) {
			return []*domain.BoardParticipant{&ownerRow}, nil
		},
	}

	var checkedUsers []uuid.UUID
	users := &MockUserDirectory{
		UserExistsFunc: func(ctx context.Context, userID uuid.UUID) (bool, error) {
			checkedUsers = append(checkedUsers, userID)
			return true, nil
		},
	}

	svc := NewBoardService(&MockTxRunner{}, boardRepo, participantRepo, users,
		testRoleResolver(participantRepo), &MockLifecycleService{}, nil, zap.NewNop())

	desired := []dto.ParticipantEntry{
		{UserID: promoted, Role: domain.RoleWriter},
		{UserID: added, Role: domain.RoleReader},
		// entry naming the acting owner must be ignored
		{UserID: owner, Role: domain.RoleReader},
	}
	_, err := svc.UpdateBoard(authedContext(owner), boardID, &dto.UpdateBoardRequest{Participants: &desired})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{removedRow.ID}, deletedIDs)
	assert.Equal(t, []domain.Role{domain.RoleWriter}, roleChanges)
	assert.Equal(t, []uuid.UUID{added}, createdUsers)
	// only genuinely new participants hit the user service
	assert.Equal(t, []uuid.UUID{added}, checkedUsers)
}

func TestBoardService_UpdateBoard_RejectsUnknownUser(t *testing.T) {
	owner := uuid.New()
	boardID := uuid.New()

	boardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{
				BaseModel: domain.BaseModel{ID: boardID},
				Title:     "b",
				Participants: []domain.BoardParticipant{
					{BaseModel: domain.BaseModel{ID: uuid.New()}, BoardID: boardID, UserID: owner, Role: domain.RoleOwner},
				},
			}, nil
		},
	}
	created := false
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{owner: domain.RoleOwner}),
		CreateFunc: func(ctx context.Context, p *domain.BoardParticipant) error {
			created = true
			return nil
		},
	}
	users := &MockUserDirectory{
		UserExistsFunc: func(ctx context.Context, userID uuid.UUID) (bool, error) {
			return false, nil
		},
	}

	svc := NewBoardService(&MockTxRunner{}, boardRepo, participantRepo, users,
		testRoleResolver(participantRepo), &MockLifecycleService{}, nil, zap.NewNop())

	desired := []dto.ParticipantEntry{{UserID: uuid.New(), Role: domain.RoleReader}}
	_, err := svc.UpdateBoard(authedContext(owner), boardID, &dto.UpdateBoardRequest{Participants: &desired})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
	assert.False(t, created, "validation failure must stop the plan before any write")
}

func TestBoardService_DeleteBoard(t *testing.T) {
	owner := uuid.New()
	reader := uuid.New()
	boardID := uuid.New()

	boardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: boardID}, Title: "b"}, nil
		},
	}
	participantRepo := &MockParticipantRepository{
		FindByBoardAndUserFunc: participantLookup(boardID, map[uuid.UUID]domain.Role{
			owner:  domain.RoleOwner,
			reader: domain.RoleReader,
		}),
	}
	var deletedBoard uuid.UUID
	lifecycle := &MockLifecycleService{
		DeleteBoardFunc: func(ctx context.Context, id uuid.UUID) error {
			deletedBoard = id
			return nil
		},
	}

	svc := NewBoardService(&MockTxRunner{}, boardRepo, participantRepo, &MockUserDirectory{},
		testRoleResolver(participantRepo), lifecycle, nil, zap.NewNop())

	err := svc.DeleteBoard(authedContext(reader), boardID)
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeForbidden, appErrorCode(t, err))

	require.NoError(t, svc.DeleteBoard(authedContext(owner), boardID))
	assert.Equal(t, boardID, deletedBoard)
}
