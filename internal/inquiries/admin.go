package inquiries

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

var categoryLabels = map[models.InquiryCategory]string{
	models.InquiryCategoryContract:  "Contract",
	models.InquiryCategoryPayment:   "Payment / Points",
	models.InquiryCategoryAccount:   "Account / Login",
	models.InquiryCategoryTechnical: "Technical support",
	models.InquiryCategoryOther:     "Other",
}

var statusLabels = map[models.InquiryStatus]string{
	models.InquiryStatusPending:    "Pending",
	models.InquiryStatusInProgress: "In progress",
	models.InquiryStatusAnswered:   "Answered",
	models.InquiryStatusClosed:     "Closed",
}

var statusBadges = map[models.InquiryStatus]string{
	models.InquiryStatusPending:    "badge-warning",
	models.InquiryStatusInProgress: "badge-info",
	models.InquiryStatusAnswered:   "badge-success",
	models.InquiryStatusClosed:     "badge-secondary",
}

// inquiryView decorates an inquiry with display labels for templates.
type inquiryView struct {
	models.Inquiry
	CategoryLabel    string
	StatusLabel      string
	StatusBadgeClass string
}

func toView(inq models.Inquiry) inquiryView {
	return inquiryView{
		Inquiry:          inq,
		CategoryLabel:    categoryLabels[inq.Category],
		StatusLabel:      statusLabels[inq.Status],
		StatusBadgeClass: statusBadges[inq.Status],
	}
}

const adminPageSize = 20

// AdminHandler serves the server-rendered inquiry management pages.
type AdminHandler struct {
	svc *Service
}

// NewAdminHandler creates the admin inquiries handler.
func NewAdminHandler(svc *Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Index handles GET /adm/inquiries?page=N.
func (h *AdminHandler) Index(c *gin.Context) {
	page := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	result, err := h.svc.ListPaginated(c.Request.Context(), page, adminPageSize)
	if err != nil {
		response.Internal(c, "failed to list inquiries")
		return
	}

	views := make([]inquiryView, 0, len(result.Items))
	for _, inq := range result.Items {
		views = append(views, toView(inq))
	}
	totalPages := int((result.Total + adminPageSize - 1) / adminPageSize)

	message, errMsg := admin.Flash(c)
	c.HTML(http.StatusOK, "admin/inquiries/index.tmpl", gin.H{
		"Inquiries":   views,
		"CurrentPage": result.Page,
		"TotalPages":  totalPages,
		"Total":       result.Total,
		"Message":     message,
		"Error":       errMsg,
	})
}

// Detail handles GET /adm/inquiries/:id.
func (h *AdminHandler) Detail(c *gin.Context) {
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
	message, errMsg := admin.Flash(c)
	c.HTML(http.StatusOK, "admin/inquiries/detail.tmpl", gin.H{
		"Inquiry": toView(*inq),
		"Statuses": []models.InquiryStatus{
			models.InquiryStatusPending,
			models.InquiryStatusInProgress,
			models.InquiryStatusAnswered,
			models.InquiryStatusClosed,
		},
		"StatusLabels": statusLabels,
		"Message":      message,
		"Error":        errMsg,
	})
}

// UpdateStatus handles POST /adm/inquiries/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid inquiry id")
		return
	}
	back := "/adm/inquiries/" + idStr

	var in UpdateStatusInput
	if v := c.PostForm("status"); v != "" {
		st := models.InquiryStatus(v)
		in.Status = &st
	}
	if v, ok := c.GetPostForm("admin_note"); ok {
		if v == "" {
			in.AdminNote = nullable.NewNullNullable[string]()
		} else {
			in.AdminNote = nullable.NewNullableWithValue(v)
		}
	}

	if _, err := h.svc.UpdateStatus(c.Request.Context(), id, in); err != nil {
		admin.RedirectError(c, back, err)
		return
	}
	admin.RedirectMessage(c, back, "Inquiry updated.")
}

// Respond handles POST /adm/inquiries/:id/respond: mail the response to the
// inquiry owner, then mark the inquiry answered.
func (h *AdminHandler) Respond(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid inquiry id")
		return
	}
	back := "/adm/inquiries/" + idStr

	message := c.PostForm("message")
	if message == "" {
		admin.RedirectError(c, back, errors.New("response message is required"))
		return
	}
	if err := h.svc.SendResponse(c.Request.Context(), id, message); err != nil {
		admin.RedirectError(c, back, err)
		return
	}
	admin.RedirectMessage(c, back, "Response sent.")
}

// Remove handles POST /adm/inquiries/:id/delete.
func (h *AdminHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid inquiry id")
		return
	}
	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		admin.RedirectError(c, "/adm/inquiries", err)
		return
	}
	admin.RedirectMessage(c, "/adm/inquiries", "Inquiry deleted.")
}
