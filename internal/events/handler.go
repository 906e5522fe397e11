package events

import (
	"github.com/gin-gonic/gin"

	"github.com/insign-app/backend/pkg/response"
)

// Handler serves the public event endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates an events handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListActive handles GET /api/events. Only active events are visible to end
// users.
func (h *Handler) ListActive(c *gin.Context) {
	list, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}
