package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hospital-appointment-service/config"
	"hospital-appointment-service/internal/domain/entity"
	"hospital-appointment-service/internal/service"
	"hospital-appointment-service/internal/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type apiClient struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "landing.html"), []byte("<h1>Hospital</h1>"), 0o600))

	cfg := &config.Config{
		App:       config.AppConfig{StaticDir: staticDir},
		RateLimit: config.RateLimitConfig{RPS: 0},
	}
	db := testutil.NewTestDB(t)
	h := NewHTTPHandler(cfg, db, service.NoopSlotLocker{}, testutil.NewLogger(), prometheus.NewRegistry())

	return &apiClient{t: t, db: db, handler: h}
}

func (c *apiClient) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestAppointmentLifecycleOverHTTP(t *testing.T) {
	c := newAPIClient(t)
	patient := testutil.CreatePatient(t, c.db, "Pat")
	doctor := testutil.CreateDoctor(t, c.db, "Dr. House", "Cardiology", false, testutil.Slot("2024-04-10", "09:00"))

	rec, _ := c.do(http.MethodPut, "/doctors/"+doctor.ID.String()+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := c.do(http.MethodGet, "/doctors/Cardiology", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doctors []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &doctors))
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. House", doctors[0]["name"])

	booking := map[string]interface{}{
		"patientId": patient.ID,
		"doctorId":  doctor.ID,
		"date":      "2024-04-10",
		"time":      "09:00",
		"age":       40,
		"gender":    "male",
		"reason":    "chest pain",
		"phone":     "555-0101",
	}
	rec, env = c.do(http.MethodPost, "/appointments", booking)
	require.Equal(t, http.StatusCreated, rec.Code)
	var appointment map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &appointment))
	appointmentID := appointment["id"].(string)
	assert.Equal(t, "confirmed", appointment["status"])

	rec, env = c.do(http.MethodGet, "/slots/"+doctor.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	rec, _ = c.do(http.MethodPost, "/appointments", booking)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = c.do(http.MethodPut, "/appointments/"+appointmentID+"/checkin", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = c.do(http.MethodPut, "/appointments/"+appointmentID+"/checkout", map[string]interface{}{"billAmount": "100"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	rec, _ = c.do(http.MethodPut, "/appointments/"+appointmentID+"/checkout", map[string]interface{}{
		"billAmount": "100",
		"medicines":  []string{"aspirin"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = c.do(http.MethodPost, "/prescriptions", map[string]interface{}{
		"appointmentId": appointmentID,
		"medicines":     []string{"aspirin"},
		"notes":         "rest",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = c.do(http.MethodPut, "/appointments/"+appointmentID+"/checkout", map[string]interface{}{
		"billAmount": "100",
		"medicines":  []string{"aspirin"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var checkout map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &checkout))
	assert.Equal(t, "completed", checkout["appointment"]["status"])

	rec, env = c.do(http.MethodGet, "/appointments/completed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var completed []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &completed))
	require.Len(t, completed, 1)
	assert.NotNil(t, completed[0]["prescription"])

	rec, env = c.do(http.MethodGet, "/prescriptions/bill/"+patient.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bills []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &bills))
	require.Len(t, bills, 1)
	assert.Equal(t, float64(100), bills[0]["bill"].(map[string]interface{})["amount"])
	assert.Equal(t, float64(0), bills[0]["bill"].(map[string]interface{})["otherCharges"])

	rec, _ = c.do(http.MethodDelete, "/appointments/"+appointmentID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = c.do(http.MethodGet, "/prescriptions/bill/"+patient.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &bills))
	assert.Len(t, bills, 1, "bill outlives the cancelled appointment")

	rec, env = c.do(http.MethodGet, "/slots/"+doctor.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slots []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &slots))
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0]["time"])

	rec, _ = c.do(http.MethodDelete, "/appointments/"+appointmentID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = c.do(http.MethodGet, "/audit-logs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &logs))
	assert.Equal(t, entity.AuditActionAppointmentCancel, logs[0]["action"])
}

func TestRoutesRejectMalformedInput(t *testing.T) {
	c := newAPIClient(t)

	rec, env := c.do(http.MethodPost, "/appointments", map[string]interface{}{"date": "10/04/2024"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "time")

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/slots/not-a-uuid"},
		{http.MethodDelete, "/appointments/not-a-uuid"},
		{http.MethodPut, "/appointments/not-a-uuid/checkin"},
		{http.MethodGet, "/prescriptions/bill/not-a-uuid"},
	} {
		rec, env = c.do(route.method, route.path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, route.path)
		assert.False(t, env.Success, route.path)
	}

	rec, env = c.do(http.MethodPut, "/doctors/8b0e5c8e-1111-4a1a-9a1a-000000000000/approve", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `"Doctor not found"`, string(env.Error))
}

func TestFixedRoutesWinOverParameters(t *testing.T) {
	c := newAPIClient(t)
	testutil.CreateDoctor(t, c.db, "Dr. Pending", "Cardiology", false)

	rec, env := c.do(http.MethodGet, "/doctors/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &pending))
	assert.Len(t, pending, 1)

	rec, env = c.do(http.MethodGet, "/appointments/confirmed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestOperationalRoutes(t *testing.T) {
	c := newAPIClient(t)

	rec, _ := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	c.do(http.MethodGet, "/doctors/pending", nil)
	rec, _ = c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hospital_http_requests_total{method="GET",route="/doctors/pending",status="200"} 1`)

	rec, _ = c.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hospital")
}
