package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-tracker-api/internal/access"
	"goal-tracker-api/internal/client"
	"goal-tracker-api/internal/domain"
	"goal-tracker-api/internal/dto"
	"goal-tracker-api/internal/repository"
	"goal-tracker-api/internal/response"
)

// tempAttachmentTTL is how long an unconfirmed upload survives before the
// cleanup job reclaims it
const tempAttachmentTTL = 24 * time.Hour

// AttachmentService defines the interface for goal attachment business logic
type AttachmentService interface {
	GeneratePresignedURL(ctx context.Context, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
	ListByGoal(ctx context.Context, goalID uuid.UUID) ([]*dto.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error
}

// attachmentServiceImpl is the implementation of AttachmentService
type attachmentServiceImpl struct {
	goalRepo       repository.GoalRepository
	attachmentRepo repository.AttachmentRepository
	s3Client       client.S3ClientInterface
	roles          *RoleResolver
	logger         *zap.Logger
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(
	goalRepo repository.GoalRepository,
	attachmentRepo repository.AttachmentRepository,
	s3Client client.S3ClientInterface,
	roles *RoleResolver,
	logger *zap.Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		goalRepo:       goalRepo,
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		roles:          roles,
		logger:         logger,
	}
}

// GeneratePresignedURL creates a TEMP attachment row and a presigned S3
// upload URL for it. The attachment binds to a goal later, when its id is
// passed to a goal create or update; unclaimed uploads expire.
func (s *attachmentServiceImpl) GeneratePresignedURL(ctx context.Context, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	userID := userIDFromContext(ctx)
	if userID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	}

	uploadURL, fileKey, err := s.s3Client.GeneratePresignedURL(ctx, userID, req.FileName, req.ContentType)
	if err != nil {
		s.logger.Error("Failed to generate presigned URL",
			zap.String("file_name", req.FileName),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate upload URL", err.Error())
	}

	expiresAt := time.Now().Add(tempAttachmentTTL)
	attachment := &domain.Attachment{
		Status:      domain.AttachmentStatusTemp,
		FileName:    req.FileName,
		FileKey:     fileKey,
		FileSize:    req.FileSize,
		ContentType: req.ContentType,
		UploadedBy:  userID,
		ExpiresAt:   &expiresAt,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		s.logger.Error("Failed to create attachment record",
			zap.String("file_key", fileKey),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create attachment", err.Error())
	}

	return &dto.PresignedURLResponse{
		AttachmentID: attachment.ID,
		UploadURL:    uploadURL,
		FileKey:      fileKey,
		ExpiresAt:    expiresAt,
	}, nil
}

// ListByGoal lists a goal's confirmed attachments. Participant read access
// on the goal is required.
func (s *attachmentServiceImpl) ListByGoal(ctx context.Context, goalID uuid.UUID) ([]*dto.AttachmentResponse, error) {
	userID := userIDFromContext(ctx)

	goal, err := s.goalRepo.FindByID(ctx, goalID)
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
		Target: goalAccessTarget(goal),
	}); !d.Allowed {
		return nil, denyError(d)
	}

	attachments, err := s.attachmentRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list attachments", err.Error())
	}

	responses := make([]*dto.AttachmentResponse, len(attachments))
	for i, attachment := range attachments {
		responses[i] = s.toAttachmentResponse(attachment)
	}
	return responses, nil
}

// DeleteAttachment removes an attachment's S3 object and its record.
// Uploader only, whether the attachment is still TEMP or already confirmed.
func (s *attachmentServiceImpl) DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	userID := userIDFromContext(ctx)
	if userID == uuid.Nil {
		return response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	}

	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Attachment not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch attachment", err.Error())
	}

	if attachment.UploadedBy != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Permission denied: user is not the uploader", "")
	}

	if err := s.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
		s.logger.Error("Failed to delete file from S3",
			zap.String("attachment_id", attachment.ID.String()),
			zap.String("file_key", attachment.FileKey),
			zap.Error(err),
		)
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment file", err.Error())
	}

	if err := s.attachmentRepo.Delete(ctx, attachment.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment", err.Error())
	}

	s.logger.Info("Attachment deleted",
		zap.String("attachment_id", attachment.ID.String()),
		zap.String("uploaded_by", userID.String()),
	)
	return nil
}

// toAttachmentResponse converts domain.Attachment to dto.AttachmentResponse
func (s *attachmentServiceImpl) toAttachmentResponse(attachment *domain.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:          attachment.ID,
		GoalID:      attachment.GoalID,
		Status:      attachment.Status,
		FileName:    attachment.FileName,
		FileSize:    attachment.FileSize,
		ContentType: attachment.ContentType,
		UploadedBy:  attachment.UploadedBy,
		CreatedAt:   attachment.CreatedAt,
	}
}
