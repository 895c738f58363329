package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PinguinAgent/models"
	"PinguinAgent/repositories/mocks"
	"PinguinAgent/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *mocks.LocalStateRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	localState := new(mocks.LocalStateRepository)
	monitor := services.NewMonitorService(services.MonitorConfig{
		OwnerUID:   "owner",
		LocalState: localState,
	})
	SetMonitorService(monitor)

	r := gin.New()
	r.GET("/check-blocking", CheckAppBlocking)
	r.GET("/status", Status)
	r.POST("/sync", ForceSync)
	r.GET("/debug/state", DebugState)
	return r, localState
}

func TestCheckAppBlockingRequiresPackage(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/check-blocking", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckAppBlockingUnknownApp(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/check-blocking?app_package=com.never.seen", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Blocked bool   `json:"blocked"`
		Known   bool   `json:"known"`
		Type    string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Blocked)
	assert.False(t, resp.Known)
	assert.Empty(t, resp.Type)
}

func TestCheckAppBlockingAcceptsLegacyParamName(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/check-blocking?package=com.never.seen", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatusWithJournaledPass(t *testing.T) {
	r, localState := setupRouter(t)

	pass := models.SyncPass{
		ID:        "pass-1",
		StartedAt: time.Now().Add(-time.Minute),
		Status:    models.PassStatusOK,
		Upserts:   3,
	}
	localState.On("LatestPass").Return(pass, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SyncPass
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pass-1", resp.ID)
	assert.Equal(t, 3, resp.Upserts)
}

func TestForceSyncQueuesPass(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestDebugStateEmpty(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/debug/state", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		BlockedApps []string `json:"blocked_apps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.BlockedApps)
}
