package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/trip-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestInit_RegistersRoutes(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()
	require.NotNil(t, router)

	patterns := map[string]bool{}
	for _, route := range router.Routes() {
		patterns[route.Pattern] = true
	}

	for _, p := range []string{
		"/api/user/register",
		"/api/user/login",
		"/api/version",
		"/api/docs/*",
		"/api/collections/*",
		"/api/batch",
	} {
		assert.True(t, patterns[p], "route %s must be registered", p)
	}
}

func TestGetServerVersion(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppInfo(gomock.Any()).Return(models.ServerInfo{Version: "1.4.0"})

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"1.4.0"`)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
