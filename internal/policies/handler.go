package policies

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/insign-app/backend/internal/models"
	"github.com/insign-app/backend/pkg/response"
)

// Handler serves the public policy endpoints. Fetches that find nothing
// return 200 with null data, matching the mobile client's contract.
type Handler struct {
	svc *Service
}

// NewHandler creates a policies handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GetPrivacyPolicy handles GET /api/policies/privacy-policy.
func (h *Handler) GetPrivacyPolicy(c *gin.Context) {
	h.activeByType(c, models.PolicyTypePrivacy)
}

// GetTermsOfService handles GET /api/policies/terms-of-service.
func (h *Handler) GetTermsOfService(c *gin.Context) {
	h.activeByType(c, models.PolicyTypeTerms)
}

func (h *Handler) activeByType(c *gin.Context, t models.PolicyType) {
	p, err := h.svc.GetActiveByType(c.Request.Context(), t)
	if errors.Is(err, ErrNotFound) {
		response.OK(c, nil)
		return
	}
	if err != nil {
		response.Internal(c, "failed to load policy")
		return
	}
	response.OK(c, p)
}

// GetByID handles GET /api/policies/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid policy id")
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.OK(c, nil)
		return
	}
	if err != nil {
		response.Internal(c, "failed to load policy")
		return
	}
	response.OK(c, p)
}
