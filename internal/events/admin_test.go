package events

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(svc)
	r := gin.New()
	r.POST("/adm/events", h.Create)
	r.POST("/adm/events/:id", h.Update)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminCreateRejectsEmptyFields(t *testing.T) {
	store := newFakeEventStore()
	r := newAdminRouter(newTestEventService(store))

	w := postForm(r, "/adm/events", url.Values{"title": {""}, "content": {"body"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/adm/events/new?error=")
	assert.Empty(t, store.events)
}

func TestAdminUpdateRejectsEmptyFields(t *testing.T) {
	store := newFakeEventStore()
	svc := newTestEventService(store)
	r := newAdminRouter(svc)
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateInput{Title: "Launch promo", Content: "Half off"})
	require.NoError(t, err)

	for name, form := range map[string]url.Values{
		"empty title":   {"title": {""}, "content": {"Half off"}},
		"empty content": {"title": {"Launch promo"}, "content": {""}},
	} {
		w := postForm(r, fmt.Sprintf("/adm/events/%d", e.ID), form)
		assert.Equal(t, http.StatusFound, w.Code, name)
		assert.Contains(t, w.Header().Get("Location"),
			fmt.Sprintf("/adm/events/%d/edit?error=", e.ID), name)
	}

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch promo", got.Title)
	assert.Equal(t, "Half off", got.Content)
}

func TestAdminUpdatePersistsFullForm(t *testing.T) {
	store := newFakeEventStore()
	svc := newTestEventService(store)
	r := newAdminRouter(svc)
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateInput{Title: "Launch promo", Content: "Half off"})
	require.NoError(t, err)

	w := postForm(r, fmt.Sprintf("/adm/events/%d", e.ID), url.Values{
		"title":      {"Spring promo"},
		"content":    {"Quarter off"},
		"start_date": {"2026-04-01"},
		"end_date":   {""},
		"is_active":  {"false"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/adm/events?message=")

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring promo", got.Title)
	assert.Equal(t, "Quarter off", got.Content)
	require.NotNil(t, got.StartDate)
	assert.Nil(t, got.EndDate)
	assert.False(t, got.IsActive)
}
