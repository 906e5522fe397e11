package inquiries

import (
	"github.com/gin-gonic/gin"

	"github.com/insign-app/backend/pkg/response"
	"github.com/insign-app/backend/pkg/storage"
)

// AttachmentHandler issues pre-signed upload URLs for inquiry attachments.
// s3 may be nil when AWS is not configured; the endpoint then reports 503.
type AttachmentHandler struct {
	s3 *storage.S3
}

// NewAttachmentHandler creates an attachment handler.
func NewAttachmentHandler(s3 *storage.S3) *AttachmentHandler {
	return &AttachmentHandler{s3: s3}
}

// UploadURLRequest is the body for POST /api/inquiries/attachments/upload-url.
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// GenerateUploadURL handles POST /api/inquiries/attachments/upload-url. The
// returned object URL is what the client places in attachment_urls when
// creating the inquiry.
func (h *AttachmentHandler) GenerateUploadURL(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "attachment storage not configured")
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !storage.ValidateAttachmentType(req.ContentType) {
		response.BadRequest(c, "unsupported attachment type")
		return
	}
	key := storage.AttachmentKey(req.Filename)
	uploadURL, objectURL, err := h.s3.PresignUpload(c.Request.Context(), key, req.ContentType)
	if err != nil {
		response.Internal(c, "failed to create upload url")
		return
	}
	response.OK(c, gin.H{
		"upload_url": uploadURL,
		"object_url": objectURL,
		"key":        key,
	})
}
