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
	"goal-tracker-api/internal/metrics"
	"goal-tracker-api/internal/repository"
	"goal-tracker-api/internal/response"
)

// UserDirectory checks user existence against the external user service.
// Reconciliation entries referencing unknown users are rejected before any
// mutation begins.
type UserDirectory interface {
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, req *dto.CreateBoardRequest) (*dto.BoardDetailResponse, error)
	GetBoard(ctx context.Context, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	ListBoards(ctx context.Context, q dto.ListQuery) ([]*dto.BoardResponse, error)
	UpdateBoard(ctx context.Context, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardDetailResponse, error)
	DeleteBoard(ctx context.Context, boardID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	tx              repository.TxRunner
	boardRepo       repository.BoardRepository
	participantRepo repository.ParticipantRepository
	users           UserDirectory
	roles           *RoleResolver
	lifecycle       LifecycleService
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	tx repository.TxRunner,
	boardRepo repository.BoardRepository,
	participantRepo repository.ParticipantRepository,
	users UserDirectory,
	roles *RoleResolver,
	lifecycle LifecycleService,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		tx:              tx,
		boardRepo:       boardRepo,
		participantRepo: participantRepo,
		users:           users,
		roles:           roles,
		lifecycle:       lifecycle,
		metrics:         m,
		logger:          logger,
	}
}

// CreateBoard creates a board and its creator's owner participant row in one
// transaction. Any authenticated user may create a board.
func (s *boardServiceImpl) CreateBoard(ctx context.Context, req *dto.CreateBoardRequest) (*dto.BoardDetailResponse, error) {
	userID := userIDFromContext(ctx)
	if d := access.Authorize(access.Request{
		UserID: userID,
		Action: access.ActionCreate,
		Target: access.BoardTarget{},
	}); !d.Allowed {
		return nil, denyError(d)
	}

	board := &domain.Board{Title: req.Title}
	owner := &domain.BoardParticipant{UserID: userID, Role: domain.RoleOwner}

	err := s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.boardRepo.Create(ctx, board); err != nil {
			return err
		}
		owner.BoardID = board.ID
		return s.participantRepo.Create(ctx, owner)
	})
	if err != nil {
		s.logger.Error("Failed to create board", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}
	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("owner_id", userID.String()),
	)

	return s.toBoardDetailResponse(board, []*domain.BoardParticipant{owner}), nil
}

// GetBoard retrieves a board with its participant list
func (s *boardServiceImpl) GetBoard(ctx context.Context, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
	userID := userIDFromContext(ctx)

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
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
		Action: access.ActionRead,
		Target: access.BoardTarget{Deleted: board.IsDeleted},
	}); !d.Allowed {
		return nil, denyError(d)
	}

	participants := make([]*domain.BoardParticipant, len(board.Participants))
	for i := range board.Participants {
		participants[i] = &board.Participants[i]
	}
	return s.toBoardDetailResponse(board, participants), nil
}

// ListBoards lists the live boards the requester participates in
func (s *boardServiceImpl) ListBoards(ctx context.Context, q dto.ListQuery) ([]*dto.BoardResponse, error) {
	userID := userIDFromContext(ctx)
	if d := access.Authorize(access.Request{
		UserID: userID,
		Action: access.ActionCreate,
		Target: access.BoardTarget{},
	}); !d.Allowed {
		// only the authentication rule can fire here
		return nil, denyError(d)
	}

	boards, err := s.boardRepo.FindByParticipant(ctx, userID, q.Limit, q.Offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list boards", err.Error())
	}

	responses := make([]*dto.BoardResponse, len(boards))
	for i, board := range boards {
		responses[i] = s.toBoardResponse(board)
	}
	return responses, nil
}

// UpdateBoard renames a board and, when a desired participant set is given,
// reconciles the board's participants against it. The title update needs
// writer authority, touching participants needs the owner role. All checks
// and user validation run before the transaction; the diff applies atomically.
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardDetailResponse, error) {
	userID := userIDFromContext(ctx)

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	role, err := s.roles.Resolve(ctx, board.ID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	target := access.BoardTarget{Deleted: board.IsDeleted}
	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionUpdate,
		Target: target,
	}); !d.Allowed {
		return nil, denyError(d)
	}

	var plan access.ReconcilePlan
	if req.Participants != nil {
		if d := access.Authorize(access.Request{
			UserID: userID,
			Role:   role,
			Action: access.ActionManageParticipants,
			Target: target,
		}); !d.Allowed {
			return nil, denyError(d)
		}

		plan = access.PlanReconcile(currentParticipants(board), desiredParticipants(*req.Participants), userID)
		if err := s.validateNewParticipants(ctx, plan.Create); err != nil {
			return nil, err
		}
	}

	err = s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		if req.Title != nil && *req.Title != board.Title {
			if err := s.boardRepo.UpdateTitle(ctx, board.ID, *req.Title); err != nil {
				return err
			}
			board.Title = *req.Title
		}
		return s.applyReconcilePlan(ctx, board.ID, plan)
	})
	if err != nil {
		s.logger.Error("Failed to update board",
			zap.String("board_id", board.ID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update board", err.Error())
	}

	s.invalidatePlan(ctx, board.ID, plan)

	participants, err := s.participantRepo.FindByBoardID(ctx, board.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch participants", err.Error())
	}
	return s.toBoardDetailResponse(board, participants), nil
}

// DeleteBoard soft-deletes a board and cascades to its categories and goals.
// Owner only.
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	userID := userIDFromContext(ctx)

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	role, err := s.roles.Resolve(ctx, board.ID, userID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionDelete,
		Target: access.BoardTarget{Deleted: board.IsDeleted},
	}); !d.Allowed {
		return denyError(d)
	}

	if err := s.lifecycle.DeleteBoard(ctx, board.ID); err != nil {
		return err
	}

	// every participant's cached grant is stale now
	userIDs := make([]uuid.UUID, len(board.Participants))
	for i, p := range board.Participants {
		userIDs[i] = p.UserID
	}
	s.roles.Invalidate(ctx, board.ID, userIDs...)
	return nil
}

// validateNewParticipants rejects reconciliation entries referencing users
// unknown to the user service. Runs before the transaction.
func (s *boardServiceImpl) validateNewParticipants(ctx context.Context, create []access.DesiredParticipant) error {
	for _, entry := range create {
		exists, err := s.users.UserExists(ctx, entry.UserID)
		if err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to verify participant user", err.Error())
		}
		if !exists {
			return response.NewAppError(response.ErrCodeValidation,
				"Invalid participants: user "+entry.UserID.String()+" does not exist", "")
		}
	}
	return nil
}

// applyReconcilePlan executes a reconciliation diff against the participant
// repository. Must run inside a transaction.
func (s *boardServiceImpl) applyReconcilePlan(ctx context.Context, boardID uuid.UUID, plan access.ReconcilePlan) error {
	for _, p := range plan.Delete {
		if err := s.participantRepo.Delete(ctx, p.ID); err != nil {
			return err
		}
	}
	for _, change := range plan.Update {
		if err := s.participantRepo.UpdateRole(ctx, change.ID, change.To); err != nil {
			return err
		}
	}
	for _, entry := range plan.Create {
		participant := &domain.BoardParticipant{
			BoardID: boardID,
			UserID:  entry.UserID,
			Role:    entry.Role,
		}
		if err := s.participantRepo.Create(ctx, participant); err != nil {
			return err
		}
	}
	return nil
}

// invalidatePlan drops cached roles for every user the plan touched
func (s *boardServiceImpl) invalidatePlan(ctx context.Context, boardID uuid.UUID, plan access.ReconcilePlan) {
	var userIDs []uuid.UUID
	for _, p := range plan.Delete {
		userIDs = append(userIDs, p.UserID)
	}
	for _, change := range plan.Update {
		userIDs = append(userIDs, change.UserID)
	}
	for _, entry := range plan.Create {
		userIDs = append(userIDs, entry.UserID)
	}
	s.roles.Invalidate(ctx, boardID, userIDs...)
}

func currentParticipants(board *domain.Board) []access.ParticipantState {
	current := make([]access.ParticipantState, len(board.Participants))
	for i, p := range board.Participants {
		current[i] = access.ParticipantState{ID: p.ID, UserID: p.UserID, Role: p.Role}
	}
	return current
}

func desiredParticipants(entries []dto.ParticipantEntry) []access.DesiredParticipant {
	desired := make([]access.DesiredParticipant, len(entries))
	for i, e := range entries {
		desired[i] = access.DesiredParticipant{UserID: e.UserID, Role: e.Role}
	}
	return desired
}

// toBoardResponse converts domain.Board to dto.BoardResponse
func (s *boardServiceImpl) toBoardResponse(board *domain.Board) *dto.BoardResponse {
	return &dto.BoardResponse{
		ID:        board.ID,
		Title:     board.Title,
		IsDeleted: board.IsDeleted,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	}
}

// toBoardDetailResponse converts a board and its participants to a detail response
func (s *boardServiceImpl) toBoardDetailResponse(board *domain.Board, participants []*domain.BoardParticipant) *dto.BoardDetailResponse {
	resp := &dto.BoardDetailResponse{BoardResponse: *s.toBoardResponse(board)}
	resp.Participants = make([]dto.ParticipantResponse, len(participants))
	for i, p := range participants {
		resp.Participants[i] = dto.ParticipantResponse{
			ID:        p.ID,
			BoardID:   p.BoardID,
			UserID:    p.UserID,
			Role:      p.Role,
			CreatedAt: p.CreatedAt,
		}
	}
	return resp
}
