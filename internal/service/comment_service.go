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

// CommentService defines the interface for goal comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, q dto.CommentListQuery) ([]*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	goalRepo    repository.GoalRepository
	commentRepo repository.CommentRepository
	roles       *RoleResolver
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	goalRepo repository.GoalRepository,
	commentRepo repository.CommentRepository,
	roles *RoleResolver,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		goalRepo:    goalRepo,
		commentRepo: commentRepo,
		roles:       roles,
		logger:      logger,
	}
}

// CreateComment adds a comment to a goal. Any participant of the board may
// comment, readers included; an archived goal rejects new comments.
func (s *commentServiceImpl) CreateComment(ctx context.Context, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	userID := userIDFromContext(ctx)

	goal, err := s.goalRepo.FindByID(ctx, req.GoalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid goalId: goal does not exist", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch goal", err.Error())
	}

	role, err := s.roles.Resolve(ctx, goal.Category.BoardID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionCreate,
		Target: access.CommentTarget{
			AuthorID:     userID,
			GoalArchived: goal.Status == domain.GoalStatusArchived,
		},
	}); !d.Allowed {
		return nil, denyCreateError("goalId", d)
	}

	comment := &domain.GoalComment{
		GoalID: goal.ID,
		UserID: userID,
		Text:   req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to create comment",
			zap.String("goal_id", goal.ID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	return s.toCommentResponse(comment), nil
}

// GetComment fetches a single comment. Readable by any board participant,
// archived goals included.
func (s *commentServiceImpl) GetComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error) {
	userID := userIDFromContext(ctx)

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}

	role, err := s.roles.Resolve(ctx, comment.Goal.Category.BoardID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionRead,
		Target: access.CommentTarget{
			AuthorID:     comment.UserID,
			GoalArchived: comment.Goal.Status == domain.GoalStatusArchived,
		},
	}); !d.Allowed {
		return nil, denyError(d)
	}

	return s.toCommentResponse(comment), nil
}

// ListComments lists a goal's comments, newest first. Comments on archived
// goals stay readable to participants.
func (s *commentServiceImpl) ListComments(ctx context.Context, q dto.CommentListQuery) ([]*dto.CommentResponse, error) {
	userID := userIDFromContext(ctx)

	goal, err := s.goalRepo.FindByID(ctx, q.GoalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Goal not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch goal", err.Error())
	}

	role, err := s.roles.Resolve(ctx, goal.Category.BoardID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: access.ActionRead,
		Target: access.CommentTarget{GoalArchived: goal.Status == domain.GoalStatusArchived},
	}); !d.Allowed {
		return nil, denyError(d)
	}

	comments, err := s.commentRepo.FindByGoal(ctx, goal.ID, q.Limit, q.Offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list comments", err.Error())
	}

	responses := make([]*dto.CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = s.toCommentResponse(comment)
	}
	return responses, nil
}

// UpdateComment edits a comment's text. Author only.
func (s *commentServiceImpl) UpdateComment(ctx context.Context, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	userID := userIDFromContext(ctx)

	comment, err := s.authorizeCommentMutation(ctx, commentID, userID, access.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateText(ctx, comment.ID, req.Text); err != nil {
		s.logger.Error("Failed to update comment",
			zap.String("comment_id", comment.ID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update comment", err.Error())
	}

	comment.Text = req.Text
	return s.toCommentResponse(comment), nil
}

// DeleteComment removes a comment row. This is the only hard delete in the
// domain; comments have no soft-delete state and no cascade.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	userID := userIDFromContext(ctx)

	comment, err := s.authorizeCommentMutation(ctx, commentID, userID, access.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		s.logger.Error("Failed to delete comment",
			zap.String("comment_id", comment.ID.String()),
			zap.Error(err),
		)
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}
	return nil
}

func (s *commentServiceImpl) authorizeCommentMutation(ctx context.Context, commentID, userID uuid.UUID, action access.Action) (*domain.GoalComment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}

	role, err := s.roles.Resolve(ctx, comment.Goal.Category.BoardID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve participant role", err.Error())
	}

	if d := access.Authorize(access.Request{
		UserID: userID,
		Role:   role,
		Action: action,
		Target: access.CommentTarget{
			AuthorID:     comment.UserID,
			GoalArchived: comment.Goal.Status == domain.GoalStatusArchived,
		},
	}); !d.Allowed {
		return nil, denyError(d)
	}
	return comment, nil
}

// toCommentResponse converts domain.GoalComment to dto.CommentResponse
func (s *commentServiceImpl) toCommentResponse(comment *domain.GoalComment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        comment.ID,
		GoalID:    comment.GoalID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
