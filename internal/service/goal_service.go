package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"goal-tracker-api/internal/access"
	"goal-tracker-api/internal/domain"
	"goal-tracker-api/internal/dto"
	"goal-tracker-api/internal/metrics"
	"goal-tracker-api/internal/repository"
	"goal-tracker-api/internal/response"
)

// GoalService defines the interface for goal business logic
type GoalService interface {
	CreateGoal(ctx context.Context, req *dto.CreateGoalRequest) (*dto.GoalResponse, error)
	GetGoal(ctx context.Context, goalID uuid.UUID) (*dto.GoalResponse, error)
	ListGoals(ctx context.Context, q dto.GoalListQuery) ([]*dto.GoalResponse, error)
	UpdateGoal(ctx context.Context, goalID uuid.UUID, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error)
	DeleteGoal(ctx context.Context, goalID uuid.UUID) error
}

// goalServiceImpl is the implementation of GoalService
type goalServiceImpl struct {
	tx             repository.TxRunner
	categoryRepo   repository.CategoryRepository
	goalRepo       repository.GoalRepository
	attachmentRepo repository.AttachmentRepository
	roles          *RoleResolver
	lifecycle      LifecycleService
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewGoalService creates a new instance of GoalService
func NewGoalService(
	tx repository.TxRunner,
	categoryRepo repository.CategoryRepository,
	goalRepo repository.GoalRepository,
	attachmentRepo repository.AttachmentRepository,
	roles *RoleResolver,
	lifecycle LifecycleService,
	m *metrics.Metrics,
	logger *zap.Logger,
) GoalService {
	return &goalServiceImpl{
		tx:             tx,
		categoryRepo:   categoryRepo,
		goalRepo:       goalRepo,
		attachmentRepo: attachmentRepo,
		roles:          roles,
		lifecycle:      lifecycle,
		metrics:        m,
		logger:         logger,
	}
}

// CreateGoal creates a goal in a category. Only the category's creator may
// add goals to it, and they additionally need the writer role on the board.
// TEMP attachments referenced by the request are confirmed in the same
// transaction.
func (s *goalServiceImpl) CreateGoal(ctx context.Context, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	userID := userIDFromContext(ctx)

	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid categoryId: category does not exist", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch category", err.Error())
	}

	role, err := s.roles.Resolve(ctx, category.BoardID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionCreate,
		Target: access.GoalTarget{
			CategoryCreatorID: category.UserID,
			CategoryDeleted:   category.IsDeleted,
			BoardDeleted:      category.Board.IsDeleted,
		},
	}); !d.Allowed {
		return nil, denyCreateError("categoryId", d)
	}

	if err := s.validateAttachments(ctx, req.AttachmentIDs, userID); err != nil {
		return nil, err
	}

	customFields, err := marshalCustomFields(req.CustomFields)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid customFields", err.Error())
	}

	goal := &domain.Goal{
		CategoryID:   category.ID,
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		CustomFields: customFields,
	}
	if goal.Status == "" {
		goal.Status = domain.GoalStatusToDo
	}
	if goal.Priority == "" {
		goal.Priority = domain.GoalPriorityMedium
	}

	err = s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.goalRepo.Create(ctx, goal); err != nil {
			return err
		}
		if len(req.AttachmentIDs) == 0 {
			return nil
		}
		return s.attachmentRepo.ConfirmAttachments(ctx, req.AttachmentIDs, goal.ID)
	})
	if err != nil {
		s.logger.Error("Failed to create goal",
			zap.String("category_id", category.ID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create goal", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementGoalCreated()
	}
	s.logger.Info("Goal created",
		zap.String("goal_id", goal.ID.String()),
		zap.String("category_id", category.ID.String()),
	)

	return s.toGoalResponse(ctx, goal)
}

// GetGoal retrieves a single non-archived goal with its attachments
func (s *goalServiceImpl) GetGoal(ctx context.Context, goalID uuid.UUID) (*dto.GoalResponse, error) {
	userID := userIDFromContext(ctx)

	goal, err := s.findGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.Resolve(ctx, goal.Category.BoardID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionRead,
		Target: goalAccessTarget(goal),
	}); !d.Allowed {
		return nil, denyError(d)
	}
	return s.toGoalResponse(ctx, goal)
}

// ListGoals lists non-archived goals across the requester's boards. Both
// constraints apply together: only goals the requester can see through
// participation, and never archived ones, whatever other filters say.
func (s *goalServiceImpl) ListGoals(ctx context.Context, q dto.GoalListQuery) ([]*dto.GoalResponse, error) {
	userID := userIDFromContext(ctx)
	if userID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	}

	goals, err := s.goalRepo.FindVisible(ctx, userID, repository.GoalFilter{
		CategoryIDs: q.Categories,
		Statuses:    q.Statuses,
		Priorities:  q.Priorities,
		DueBefore:   q.DueLTE,
		DueAfter:    q.DueGTE,
		Search:      q.Search,
		OrderBy:     q.OrderBy,
		Desc:        q.Desc,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list goals", err.Error())
	}

	responses := make([]*dto.GoalResponse, len(goals))
	for i, goal := range goals {
		resp, err := s.toGoalResponse(ctx, goal)
		if err != nil {
			return nil, err
		}
		responses[i] = resp
	}
	return responses, nil
}

// UpdateGoal edits a goal. Author only; an archived goal is immutable and
// reported as not found.
func (s *goalServiceImpl) UpdateGoal(ctx context.Context, goalID uuid.UUID, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	userID := userIDFromContext(ctx)

	goal, err := s.findGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.Resolve(ctx, goal.Category.BoardID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionUpdate,
		Target: goalAccessTarget(goal),
	}); !d.Allowed {
		return nil, denyError(d)
	}

	if err := s.validateAttachments(ctx, req.AttachmentIDs, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}
	if req.DueDate != nil {
		goal.DueDate = req.DueDate
	}
	if req.CustomFields != nil {
		customFields, err := marshalCustomFields(req.CustomFields)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid customFields", err.Error())
		}
		goal.CustomFields = customFields
	}

	err = s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.goalRepo.Update(ctx, goal); err != nil {
			return err
		}
		if len(req.AttachmentIDs) == 0 {
			return nil
		}
		return s.attachmentRepo.ConfirmAttachments(ctx, req.AttachmentIDs, goal.ID)
	})
	if err != nil {
		s.logger.Error("Failed to update goal",
			zap.String("goal_id", goal.ID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update goal", err.Error())
	}

	return s.toGoalResponse(ctx, goal)
}

// DeleteGoal archives a goal. Author only; archiving twice is a not-found
// because an archived goal is already invisible.
func (s *goalServiceImpl) DeleteGoal(ctx context.Context, goalID uuid.UUID) error {
	userID := userIDFromContext(ctx)

	goal, err := s.findGoal(ctx, goalID)
	if err != nil {
		return err
	}

	role, err := s.roles.Resolve(ctx, goal.Category.BoardID, userID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionDelete,
		Target: goalAccessTarget(goal),
	}); !d.Allowed {
		return denyError(d)
	}

	return s.lifecycle.ArchiveGoal(ctx, goal.ID)
}

func (s *goalServiceImpl) findGoal(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Goal not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch goal", err.Error())
	}
	return goal, nil
}

// validateAttachments checks that every referenced attachment is a TEMP
// upload owned by the requester and not yet claimed by another goal
func (s *goalServiceImpl) validateAttachments(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	attachments, err := s.attachmentRepo.FindByIDs(ctx, ids)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch attachments", err.Error())
	}
	if len(attachments) != len(ids) {
		return response.NewAppError(response.ErrCodeValidation, "Invalid attachmentIds: unknown attachment", "")
	}
	for _, attachment := range attachments {
		if attachment.Status != domain.AttachmentStatusTemp {
			return response.NewAppError(response.ErrCodeValidation,
				"Invalid attachmentIds: attachment "+attachment.ID.String()+" is already confirmed", "")
		}
		if attachment.UploadedBy != userID {
			return response.NewAppError(response.ErrCodeValidation,
				"Invalid attachmentIds: attachment "+attachment.ID.String()+" was uploaded by another user", "")
		}
	}
	return nil
}

func marshalCustomFields(fields map[string]interface{}) (datatypes.JSON, error) {
	if fields == nil {
		return nil, nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// goalAccessTarget snapshots a goal and its preloaded category chain for
// the decision table
func goalAccessTarget(goal *domain.Goal) access.GoalTarget {
	return access.GoalTarget{
		AuthorID:          goal.UserID,
		Archived:          goal.Status == domain.GoalStatusArchived,
		CategoryCreatorID: goal.Category.UserID,
		CategoryDeleted:   goal.Category.IsDeleted,
		BoardDeleted:      goal.Category.Board.IsDeleted,
	}
}

// toGoalResponse converts domain.Goal to dto.GoalResponse, loading its
// confirmed attachments
func (s *goalServiceImpl) toGoalResponse(ctx context.Context, goal *domain.Goal) (*dto.GoalResponse, error) {
	attachments, err := s.attachmentRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch attachments", err.Error())
	}

	resp := &dto.GoalResponse{
		ID:           goal.ID,
		CategoryID:   goal.CategoryID,
		UserID:       goal.UserID,
		Title:        goal.Title,
		Description:  goal.Description,
		Status:       goal.Status,
		Priority:     goal.Priority,
		DueDate:      goal.DueDate,
		CustomFields: json.RawMessage(goal.CustomFields),
		CreatedAt:    goal.CreatedAt,
		UpdatedAt:    goal.UpdatedAt,
	}
	for _, attachment := range attachments {
		resp.Attachments = append(resp.Attachments, dto.AttachmentResponse{
			ID:          attachment.ID,
			GoalID:      attachment.GoalID,
			Status:      attachment.Status,
			FileName:    attachment.FileName,
			FileSize:    attachment.FileSize,
			ContentType: attachment.ContentType,
			UploadedBy:  attachment.UploadedBy,
			CreatedAt:   attachment.CreatedAt,
		})
	}
	return resp, nil
}
