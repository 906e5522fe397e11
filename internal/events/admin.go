package events

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/nullable"

	"github.com/insign-app/backend/internal/admin"
	"github.com/insign-app/backend/pkg/response"
)

var errMissingFields = errors.New("title and content are required")

// AdminHandler serves the server-rendered event management pages.
type AdminHandler struct {
	svc *Service
}

// NewAdminHandler creates the admin events handler.
func NewAdminHandler(svc *Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Index handles GET /adm/events.
func (h *AdminHandler) Index(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	message, errMsg := admin.Flash(c)
	c.HTML(http.StatusOK, "admin/events/index.tmpl", gin.H{
		"Events":  list,
		"Message": message,
		"Error":   errMsg,
	})
}

// NewForm handles GET /adm/events/new.
func (h *AdminHandler) NewForm(c *gin.Context) {
	_, errMsg := admin.Flash(c)
	c.HTML(http.StatusOK, "admin/events/new.tmpl", gin.H{"Error": errMsg})
}

// Create handles POST /adm/events.
func (h *AdminHandler) Create(c *gin.Context) {
	in := CreateInput{
		Title:     c.PostForm("title"),
		Content:   c.PostForm("content"),
		StartDate: formDate(c, "start_date"),
		EndDate:   formDate(c, "end_date"),
		IsActive:  formBool(c, "is_active"),
	}
	if in.Title == "" || in.Content == "" {
		admin.RedirectError(c, "/adm/events/new", errMissingFields)
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), in); err != nil {
		admin.RedirectError(c, "/adm/events/new", err)
		return
	}
	admin.RedirectMessage(c, "/adm/events", "Event created.")
}

// EditForm handles GET /adm/events/:id/edit.
func (h *AdminHandler) EditForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	e, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	_, errMsg := admin.Flash(c)
	c.HTML(http.StatusOK, "admin/events/edit.tmpl", gin.H{"Event": e, "Error": errMsg})
}

// Update handles POST /adm/events/:id. Form fields are always present, so
// every column is set; an empty date input clears the column.
func (h *AdminHandler) Update(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		admin.RedirectError(c, "/adm/events/"+idStr+"/edit", errMissingFields)
		return
	}
	in := UpdateInput{
		Title:     &title,
		Content:   &content,
		StartDate: formNullableDate(c, "start_date"),
		EndDate:   formNullableDate(c, "end_date"),
		IsActive:  formBool(c, "is_active"),
	}
	if _, err := h.svc.Update(c.Request.Context(), id, in); err != nil {
		admin.RedirectError(c, "/adm/events/"+idStr+"/edit", err)
		return
	}
	admin.RedirectMessage(c, "/adm/events", "Event updated.")
}

// Delete handles POST /adm/events/:id/delete.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		admin.RedirectError(c, "/adm/events", err)
		return
	}
	admin.RedirectMessage(c, "/adm/events", "Event deleted.")
}

func formDate(c *gin.Context, key string) *string {
	if v := c.PostForm(key); v != "" {
		return &v
	}
	return nil
}

func formNullableDate(c *gin.Context, key string) nullable.Nullable[string] {
	if v := c.PostForm(key); v != "" {
		return nullable.NewNullableWithValue(v)
	}
	// empty input clears the stored date
	return nullable.NewNullNullable[string]()
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
