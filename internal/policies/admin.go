package policies

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/nullable"

	"github.com/insign-app/backend/internal/admin"
	"github.com/insign-app/backend/internal/models"
	"github.com/insign-app/backend/pkg/response"
)

var errMissingFields = errors.New("title and content are required")

// AdminHandler serves the server-rendered policy management pages.
type AdminHandler struct {
	svc *Service
}

// NewAdminHandler creates the admin policies handler.
func NewAdminHandler(svc *Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Index handles GET /adm/policies.
func (h *AdminHandler) Index(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list policies")
		return
	}
	message, errMsg := admin.Flash(c)
	c.HTML(http.StatusOK, "admin/policies/index.tmpl", gin.H{
		"Policies": list,
		"Message":  message,
		"Error":    errMsg,
	})
}

// NewForm handles GET /adm/policies/new.
func (h *AdminHandler) NewForm(c *gin.Context) {
	_, errMsg := admin.Flash(c)
	c.HTML(http.StatusOK, "admin/policies/new.tmpl", gin.H{"Error": errMsg})
}

// Create handles POST /adm/policies.
func (h *AdminHandler) Create(c *gin.Context) {
	var version *string
	if v := c.PostForm("version"); v != "" {
		version = &v
	}
	in := CreateInput{
		Type:     models.PolicyType(c.PostForm("type")),
		Title:    c.PostForm("title"),
		Content:  c.PostForm("content"),
		Version:  version,
		IsActive: formBool(c, "is_active"),
	}
	if in.Title == "" || in.Content == "" {
		admin.RedirectError(c, "/adm/policies/new", errMissingFields)
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), in); err != nil {
		admin.RedirectError(c, "/adm/policies/new", err)
		return
	}
	admin.RedirectMessage(c, "/adm/policies", "Policy created.")
}

// EditForm handles GET /adm/policies/:id/edit.
func (h *AdminHandler) EditForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid policy id")
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "policy not found")
		return
	}
	_, errMsg := admin.Flash(c)
	c.HTML(http.StatusOK, "admin/policies/edit.tmpl", gin.H{"Policy": p, "Error": errMsg})
}

// Update handles POST /adm/policies/:id. An empty version input clears the
// stored label.
func (h *AdminHandler) Update(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid policy id")
		return
	}
	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		admin.RedirectError(c, "/adm/policies/"+idStr+"/edit", errMissingFields)
		return
	}
	version := nullable.NewNullNullable[string]()
	if v := c.PostForm("version"); v != "" {
		version = nullable.NewNullableWithValue(v)
	}
	in := UpdateInput{
		Title:    &title,
		Content:  &content,
		Version:  version,
		IsActive: formBool(c, "is_active"),
	}
	if _, err := h.svc.Update(c.Request.Context(), id, in); err != nil {
		admin.RedirectError(c, "/adm/policies/"+idStr+"/edit", err)
		return
	}
	admin.RedirectMessage(c, "/adm/policies", "Policy updated.")
}

// SetActive handles POST /adm/policies/:id/activate.
func (h *AdminHandler) SetActive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid policy id")
		return
	}
	if _, err := h.svc.SetActive(c.Request.Context(), id); err != nil {
		admin.RedirectError(c, "/adm/policies", err)
		return
	}
	admin.RedirectMessage(c, "/adm/policies", "Policy activated.")
}

// Delete handles POST /adm/policies/:id/delete.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid policy id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		admin.RedirectError(c, "/adm/policies", err)
		return
	}
	admin.RedirectMessage(c, "/adm/policies", "Policy deleted.")
}

func formBool(c *gin.Context, key string) *bool {
	switch c.PostForm(key) {
	case "true", "1", "on", "yes":
		v := true
		return &v
	case "false", "0", "off", "no":
		v := false
		return &v
	}
	return nil
}
