package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-tracker-api/internal/domain"
)

// AttachmentRepository defines the interface for attachment data access
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error)
	FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*domain.Attachment, error)
	ConfirmAttachments(ctx context.Context, ids []uuid.UUID, goalID uuid.UUID) error
	FindExpiredTemp(ctx context.Context) ([]*domain.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}

// attachmentRepositoryImpl is the GORM implementation of AttachmentRepository
type attachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepositoryImpl{db: db}
}

// Create creates a new attachment row (TEMP status until confirmed)
func (r *attachmentRepositoryImpl) Create(ctx context.Context, attachment *domain.Attachment) error {
	return conn(ctx, r.db).Create(attachment).Error
}

// FindByID finds an attachment by id
func (r *attachmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var attachment domain.Attachment
	if err := conn(ctx, r.db).
		Where("id = ?", id).
		First(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// FindByIDs finds attachments by a set of ids
func (r *attachmentRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var attachments []*domain.Attachment
	if err := conn(ctx, r.db).
		Where("id IN ?", ids).
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// FindByGoalID finds confirmed attachments bound to a goal
func (r *attachmentRepositoryImpl) FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	if err := conn(ctx, r.db).
		Where("goal_id = ? AND status = ?", goalID, domain.AttachmentStatusConfirmed).
		Order("created_at ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// ConfirmAttachments binds TEMP attachments to a goal and clears their
// expiry. Rows already confirmed are not touched; a count mismatch means
// some id was invalid or already used.
func (r *attachmentRepositoryImpl) ConfirmAttachments(ctx context.Context, ids []uuid.UUID, goalID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	result := conn(ctx, r.db).
		Model(&domain.Attachment{}).
		Where("id IN ? AND status = ?", ids, domain.AttachmentStatusTemp).
		Updates(map[string]interface{}{
			"goal_id":    goalID,
			"status":     domain.AttachmentStatusConfirmed,
			"expires_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindExpiredTemp finds TEMP attachments whose expiry has passed
func (r *attachmentRepositoryImpl) FindExpiredTemp(ctx context.Context) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	if err := conn(ctx, r.db).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", domain.AttachmentStatusTemp, time.Now().UTC()).
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Delete removes an attachment row
func (r *attachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).
		Where("id = ?", id).
		Delete(&domain.Attachment{}).Error
}

// DeleteByIDs removes attachment rows in batch
func (r *attachmentRepositoryImpl) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return conn(ctx, r.db).
		Where("id IN ?", ids).
		Delete(&domain.Attachment{}).Error
}
