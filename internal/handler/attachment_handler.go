package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"goal-tracker-api/internal/dto"
	"goal-tracker-api/internal/response"
	"goal-tracker-api/internal/service"
)

type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// GeneratePresignedURL godoc
// @Summary      Request an attachment upload URL
// @Description  Creates a temporary attachment and returns a presigned S3 upload URL. Pass the attachment id in a goal create or update to confirm it.
// @Tags         attachments
// @Accept       json
// @Produce      json
// @Param        request body dto.PresignedURLRequest true "Upload URL request"
// @Success      201 {object} response.SuccessResponse{data=dto.PresignedURLResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Router       /attachments/presigned-url [post]
func (h *AttachmentHandler) GeneratePresignedURL(c *gin.Context) {
	var req dto.PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.attachmentService.GeneratePresignedURL(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListByGoal godoc
// @Summary      List a goal's attachments
// @Tags         attachments
// @Produce      json
// @Param        goalId path string true "Goal ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.AttachmentResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid goal ID"
// @Failure      404 {object} response.ErrorResponse "Goal not found or archived"
// @Router       /attachments/goal/{goalId} [get]
func (h *AttachmentHandler) ListByGoal(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid goal ID")
		return
	}

	attachments, err := h.attachmentService.ListByGoal(c.Request.Context(), goalID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, attachments)
}

// DeleteAttachment godoc
// @Summary      Delete an attachment
// @Description  Removes the attachment's file and record. Uploader only.
// @Tags         attachments
// @Produce      json
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse "Not the uploader"
// @Failure      404 {object} response.ErrorResponse "Attachment not found"
// @Router       /attachments/{attachmentId} [delete]
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	attachmentID, err := uuid.Parse(c.Param("attachmentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid attachment ID")
		return
	}

	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), attachmentID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
