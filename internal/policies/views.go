package policies

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/insign-app/backend/internal/models"
)

// ViewHandler renders the public policy pages.
type ViewHandler struct {
	svc *Service
}

// NewViewHandler creates the policy page handler.
func NewViewHandler(svc *Service) *ViewHandler {
	return &ViewHandler{svc: svc}
}

// Privacy handles GET /policies/privacy.
func (h *ViewHandler) Privacy(c *gin.Context) {
	h.render(c, models.PolicyTypePrivacy, "policies/privacy.tmpl", "No privacy policy has been published.")
}

// Terms handles GET /policies/terms.
func (h *ViewHandler) Terms(c *gin.Context) {
	h.render(c, models.PolicyTypeTerms, "policies/terms.tmpl", "No terms of service have been published.")
}

func (h *ViewHandler) render(c *gin.Context, t models.PolicyType, tmpl, missing string) {
	p, err := h.svc.GetActiveByType(c.Request.Context(), t)
	if errors.Is(err, ErrNotFound) {
		c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"Message": missing})
		return
	}
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "Something went wrong."})
		return
	}
	c.HTML(http.StatusOK, tmpl, gin.H{
		"Title":     p.Title,
		"Version":   p.Version,
		"UpdatedAt": p.UpdatedAt,
		"Content":   p.Content,
	})
}
