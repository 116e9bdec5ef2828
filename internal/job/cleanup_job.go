package job

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goal-tracker-api/internal/client"
	"goal-tracker-api/internal/repository"
)

// CleanupJob removes expired temporary attachments. Uploads that were given
// a presigned URL but never bound to a goal leave orphan objects in S3 and
// orphan rows in the database; this job sweeps both.
type CleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	s3Client       client.S3ClientInterface
	logger         *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		logger:         logger,
	}
}

// Run executes the cleanup job. Rows are only deleted for objects whose S3
// deletion succeeded; failed ones stay behind for the next sweep.
func (j *CleanupJob) Run() {
	ctx := context.Background()

	expired, err := j.attachmentRepo.FindExpiredTemp(ctx)
	if err != nil {
		j.logger.Error("Failed to find expired temporary attachments", zap.Error(err))
		return
	}
	if len(expired) == 0 {
		return
	}

	j.logger.Info("Found expired temporary attachments", zap.Int("count", len(expired)))

	var deletedIDs []uuid.UUID
	failCount := 0

	for _, attachment := range expired {
		if err := j.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
			j.logger.Error("Failed to delete file from S3",
				zap.String("attachment_id", attachment.ID.String()),
				zap.String("file_key", attachment.FileKey),
				zap.Error(err),
			)
			failCount++
			continue
		}
		deletedIDs = append(deletedIDs, attachment.ID)
	}

	if len(deletedIDs) > 0 {
		if err := j.attachmentRepo.DeleteByIDs(ctx, deletedIDs); err != nil {
			j.logger.Error("Failed to delete attachments from database",
				zap.Int("count", len(deletedIDs)),
				zap.Error(err),
			)
			return
		}
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("total_expired", len(expired)),
		zap.Int("success", len(deletedIDs)),
		zap.Int("failed", failCount),
	)
}
