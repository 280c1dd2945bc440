package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"console-rental-backend/config"
	"console-rental-backend/internal/db"
	"console-rental-backend/internal/model"
	"console-rental-backend/internal/store"
)

// newTestRouter wires a full router against a per-test in-memory sqlite
// database, with rate limits high enough to never trip during a test.
func newTestRouter(t *testing.T) *gin.Engine {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(testDB))

	cfg := &config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	}
	return NewRouter(cfg, store.NewGormStore(testDB), nil, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createDevice(t *testing.T, router *gin.Engine, name string, rate float64) model.Device {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/devices", gin.H{"name": name, "hourlyRate": rate})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var device model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &device))
	return device
}

func TestPostDeviceValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/devices", gin.H{"hourlyRate": 30})
	assert.Equal(t, http.StatusBadRequest, w.Code, "name is required")

	w = doJSON(t, router, "POST", "/api/devices", gin.H{"name": "بلايستيشن 5"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "hourlyRate is required")
}

func TestPostDeviceAlwaysStartsAvailable(t *testing.T) {
	router := newTestRouter(t)

	device := createDevice(t, router, "بلايستيشن 5", 30)
	assert.NotZero(t, device.ID)
	assert.Equal(t, model.DeviceAvailable, device.Status)
	assert.Nil(t, device.CurrentSession)
}

func TestSessionFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	device := createDevice(t, router, "بلايستيشن 5", 30)
	base := fmt.Sprintf("/api/devices/%d/sessions", device.ID)

	// Start a session.
	w := doJSON(t, router, "POST", base, gin.H{"customerName": "أحمد"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session model.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, model.SessionRunning, session.Status)
	assert.Equal(t, "أحمد", session.CustomerName)
	assert.Nil(t, session.Cost)

	// Starting again while occupied conflicts.
	w = doJSON(t, router, "POST", base, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// End the session. The elapsed time is a sliver of an hour, but any
	// positive usage bills at least one unit.
	w = doJSON(t, router, "POST", base+"/end", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ended model.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ended))
	assert.Equal(t, model.SessionEnded, ended.Status)
	require.NotNil(t, ended.Cost)
	assert.Equal(t, 1.0, *ended.Cost)

	// Ending again has nothing to end.
	w = doJSON(t, router, "POST", base+"/end", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSessionEndpointsUnknownDevice(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/devices/999/sessions", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "POST", "/api/devices/abc/sessions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateDailyReportEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/reports/daily?date=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "POST", "/api/reports/daily?date=2024-01-15", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rep model.DailyReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "2024-01-15", rep.Date)
	assert.Equal(t, 0, rep.TotalSessions)

	w = doJSON(t, router, "GET", "/api/reports", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reports []model.DailyReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	assert.Len(t, reports, 1)
}

func TestAdjustBalanceEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/customers", gin.H{"name": "سارة", "balance": 100})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var customer model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))

	base := fmt.Sprintf("/api/customers/%d/balance", customer.ID)

	w = doJSON(t, router, "POST", base, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "amount is required")

	w = doJSON(t, router, "POST", base, gin.H{"amount": -40})
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Unknown customers are accepted and ignored.
	w = doJSON(t, router, "POST", "/api/customers/999999/balance", gin.H{"amount": 10})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, "GET", "/api/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var customers []model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.InDelta(t, 60.0, customers[0].Balance, 1e-9)
}

func TestResetEndpoint(t *testing.T) {
	router := newTestRouter(t)
	device := createDevice(t, router, "بلايستيشن 5", 30)
	doJSON(t, router, "POST", fmt.Sprintf("/api/devices/%d/sessions", device.ID), nil)

	w := doJSON(t, router, "POST", "/api/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"تم مسح البيانات بنجاح"}`, w.Body.String())

	w = doJSON(t, router, "GET", "/api/devices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var devices []model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &devices))
	assert.Empty(t, devices)
}

func TestSnapshotEndpoint(t *testing.T) {
	router := newTestRouter(t)
	createDevice(t, router, "بلايستيشن 5", 30)

	w := doJSON(t, router, "GET", "/api/snapshot", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap model.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Len(t, snap.Devices, 1)
	assert.NotNil(t, snap.Sessions)
}
