package inquiries

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/insign-app/backend/internal/middleware"
	"github.com/insign-app/backend/pkg/response"
)

// Handler serves the bearer-authenticated inquiry endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates an inquiries handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /api/inquiries.
func (h *Handler) Create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	userID := middleware.UserID(c)
	inq, err := h.svc.Create(c.Request.Context(), userID, in)
	if errors.Is(err, ErrInvalidCategory) {
		response.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		response.Internal(c, "failed to create inquiry")
		return
	}
	response.Created(c, inq)
}

// ListMine handles GET /api/inquiries/my.
func (h *Handler) ListMine(c *gin.Context) {
	userID := middleware.UserID(c)
	list, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to list inquiries")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /api/inquiries/:id. Authentication is required but
// ownership is not checked, matching the established client contract; see
// DESIGN.md before tightening this.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid inquiry id")
		return
	}
	inq, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "inquiry not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load inquiry")
		return
	}
	response.OK(c, inq)
}
