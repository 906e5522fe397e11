package policies

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insign-app/backend/internal/models"
)

func newPolicyRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(newTestService(store))
	r := gin.New()
	r.GET("/api/policies/privacy-policy", h.GetPrivacyPolicy)
	r.GET("/api/policies/terms-of-service", h.GetTermsOfService)
	r.GET("/api/policies/:id", h.GetByID)
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestGetActivePolicyEndpoint(t *testing.T) {
	store := newFakePolicyStore()
	svc := newTestService(store)
	_, err := svc.Create(context.Background(), CreateInput{
		Type:     models.PolicyTypePrivacy,
		Title:    "Privacy Policy",
		Content:  "We collect nothing.",
		IsActive: boolPtr(true),
	})
	require.NoError(t, err)

	code, body := getJSON(t, newPolicyRouter(store), "/api/policies/privacy-policy")
	assert.Equal(t, http.StatusOK, code)

	var p models.Policy
	require.NoError(t, json.Unmarshal(body["data"], &p))
	assert.Equal(t, "Privacy Policy", p.Title)
	assert.True(t, p.IsActive)
}

func TestGetActivePolicyReturnsNullWhenMissing(t *testing.T) {
	r := newPolicyRouter(newFakePolicyStore())

	for _, path := range []string{"/api/policies/privacy-policy", "/api/policies/terms-of-service"} {
		code, body := getJSON(t, r, path)
		assert.Equal(t, http.StatusOK, code, path)
		assert.Equal(t, "null", string(body["data"]), path)
		assert.Equal(t, "true", string(body["success"]), path)
	}
}

func TestGetPolicyByIDReturnsNullWhenMissing(t *testing.T) {
	code, body := getJSON(t, newPolicyRouter(newFakePolicyStore()), "/api/policies/99")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(body["data"]))
}

func TestGetPolicyByIDRejectsBadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/policies/abc", nil)
	w := httptest.NewRecorder()
	newPolicyRouter(newFakePolicyStore()).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
