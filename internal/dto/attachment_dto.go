package dto

import (
	"time"

	"github.com/google/uuid"

	"goal-tracker-api/internal/domain"
)

// PresignedURLRequest asks for an upload URL for a new goal attachment
type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required,max=255" example:"report.pdf"`
	ContentType string `json:"contentType" binding:"required,max=100" example:"application/pdf"`
	FileSize    int64  `json:"fileSize" binding:"required,min=1,max=52428800"`
}

// PresignedURLResponse carries the upload URL and the TEMP attachment it
// creates; pass AttachmentID in a goal create/update to confirm the upload.
type PresignedURLResponse struct {
	AttachmentID uuid.UUID `json:"attachmentId"`
	UploadURL    string    `json:"uploadUrl"`
	FileKey      string    `json:"fileKey"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// AttachmentResponse represents the attachment response
type AttachmentResponse struct {
	ID          uuid.UUID               `json:"id"`
	GoalID      *uuid.UUID              `json:"goalId,omitempty"`
	Status      domain.AttachmentStatus `json:"status"`
	FileName    string                  `json:"fileName"`
	FileSize    int64                   `json:"fileSize"`
	ContentType string                  `json:"contentType"`
	UploadedBy  uuid.UUID               `json:"uploadedBy"`
	CreatedAt   time.Time               `json:"createdAt"`
}
