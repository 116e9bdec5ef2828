package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentStatus represents the status of an attachment
type AttachmentStatus string

const (
	// AttachmentStatusTemp marks an upload that has a presigned URL but is
	// not yet bound to a goal; temp rows expire and are swept by the cleanup job.
	AttachmentStatusTemp AttachmentStatus = "TEMP"
	// AttachmentStatusConfirmed marks an attachment bound to a goal.
	AttachmentStatusConfirmed AttachmentStatus = "CONFIRMED"
)

// Attachment represents a file uploaded to object storage and linked to a goal.
// GoalID is nullable while the attachment is in TEMP status.
type Attachment struct {
	BaseModel
	GoalID      *uuid.UUID       `gorm:"type:uuid;index:idx_attachments_goal_id" json:"goal_id"`
	Status      AttachmentStatus `gorm:"type:varchar(20);not null;default:'TEMP';index:idx_attachments_status" json:"status"`
	FileName    string           `gorm:"type:varchar(255);not null" json:"file_name"`
	FileKey     string           `gorm:"type:text;not null" json:"file_key"`
	FileSize    int64            `gorm:"not null" json:"file_size"`
	ContentType string           `gorm:"type:varchar(100);not null" json:"content_type"`
	UploadedBy  uuid.UUID        `gorm:"type:uuid;not null;index:idx_attachments_uploaded_by" json:"uploaded_by"`
	ExpiresAt   *time.Time       `gorm:"type:timestamp;index:idx_attachments_expires_at" json:"expires_at"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
