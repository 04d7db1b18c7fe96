package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-booking/internal/config"
	"github.com/BruksfildServices01/clinic-booking/internal/domain/wizard"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
	"github.com/BruksfildServices01/clinic-booking/internal/store"
)

type pendingTimer struct {
	mu      sync.Mutex
	f       func()
	stopped bool
}

func (t *pendingTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

type holdScheduler struct {
	mu     sync.Mutex
	timers []*pendingTimer
}

func (s *holdScheduler) AfterFunc(d time.Duration, f func()) wizard.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &pendingTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *holdScheduler) fireAll() {
	s.mu.Lock()
	timers := s.timers
	s.timers = nil
	s.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.f()
		}
	}
}

type testServer struct {
	t         *testing.T
	engine    *gin.Engine
	store     *store.Store
	scheduler *holdScheduler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		StorageBackend: config.BackendMemory,
		ClinicTimezone: "UTC",
		ResetDelay:     time.Second,
		SessionIdleTTL: time.Minute,
	}
	st := store.New(store.Options{})
	reg := prometheus.NewRegistry()
	sched := &holdScheduler{}

	r := gin.New()
	sessions := RegisterRoutes(r, Deps{
		Config:    cfg,
		Store:     st,
		Metrics:   metrics.NewBookingMetrics(reg),
		Gatherer:  reg,
		Scheduler: sched,
	})
	t.Cleanup(sessions.Stop)

	return &testServer{t: t, engine: r, store: st, scheduler: sched}
}

func (s *testServer) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "memory", body["storage"])

	rec, _ = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clinic_wizard_active_sessions")
}

func TestDoctorEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/api/doctors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 6, body["total"])

	rec, body = s.do(http.MethodGet, "/api/doctors/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dr. Emily Rodriguez", body["name"])

	rec, body = s.do(http.MethodGet, "/api/doctors/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "doctor_not_found", body["error_code"])

	rec, _ = s.do(http.MethodGet, "/api/doctors/1/slots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(http.MethodGet, "/api/doctors/1/slots?date=2025-01-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["slots"], 6)

	rec, body = s.do(http.MethodGet, "/api/doctors/1/slots?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_date", body["error_code"])
}

func TestDirectAppointmentAndListing(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodPost, "/api/appointments", map[string]string{
		"name":     "Ann",
		"doctorId": "99",
		"date":     "2025-01-10",
		"time":     "07:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["createdAt"])

	rec, body = s.do(http.MethodGet, "/api/doctors/99/appointments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])

	rec, body = s.do(http.MethodGet, "/api/doctors/1/appointments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["total"])
}

func TestSelectionEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/api/selection", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["doctor_id"])

	rec, body = s.do(http.MethodPut, "/api/selection", map[string]any{"doctor_id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", body["doctor_id"])

	rec, _ = s.do(http.MethodPut, "/api/selection", map[string]any{"doctor_id": "42"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = s.do(http.MethodPut, "/api/selection", map[string]any{"doctor_id": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["doctor_id"])
}

func TestWizardBookingFlow(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodPut, "/api/selection", map[string]any{"doctor_id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := s.do(http.MethodPost, "/api/wizard", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := body["id"].(string)
	base := "/api/wizard/" + id
	assert.EqualValues(t, 1, body["step"])
	assert.Equal(t, true, body["time_selectable"])
	assert.Len(t, body["available_times"], 6)
	assert.NotEmpty(t, body["min_date"])

	rec, body = s.do(http.MethodPost, base+"/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["moved"])
	assert.EqualValues(t, 1, body["step"])

	rec, body = s.do(http.MethodPatch, base+"/fields", map[string]string{"date": "2025-01-10"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "field_not_on_current_step", body["error_code"])

	rec, body = s.do(http.MethodPatch, base+"/fields", map[string]string{"nickname": "J"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_field", body["error_code"])

	rec, _ = s.do(http.MethodPatch, base+"/fields", map[string]string{
		"name": "Jane Doe", "email": "jane@x.com", "phone": "555-1111",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, body = s.do(http.MethodPost, base+"/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["moved"])
	assert.EqualValues(t, 2, body["step"])

	rec, _ = s.do(http.MethodPatch, base+"/fields", map[string]string{
		"doctorId": "2", "date": "2025-01-10", "time": "09:00",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodPost, base+"/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPatch, base+"/fields", map[string]string{
		"reason": "checkup", "emergencyContact": "555-2222",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = s.do(http.MethodPost, base+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "not_at_confirmation", body["error_code"])

	rec, body = s.do(http.MethodPost, base+"/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 4, body["step"])

	rec, body = s.do(http.MethodPost, base+"/confirm", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	ap := body["appointment"].(map[string]any)
	assert.Equal(t, "Jane Doe", ap["name"])
	assert.Equal(t, "2", ap["doctorId"])
	wiz := body["wizard"].(map[string]any)
	assert.Equal(t, true, wiz["submitted"])
	assert.Equal(t, wizard.NoticeBooked, wiz["notice"])

	assert.Nil(t, s.store.Selection())
	assert.Len(t, s.store.ListByDoctor("2"), 1)

	rec, body = s.do(http.MethodPost, base+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_submitted", body["error_code"])

	s.scheduler.fireAll()

	rec, body = s.do(http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["step"])
	assert.Equal(t, false, body["submitted"])
	assert.Equal(t, false, body["time_selectable"])

	rec, _ = s.do(http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, body = s.do(http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "wizard_not_found", body["error_code"])
}

func TestAuditLogsOnlyMountedWithDatabase(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodGet, "/api/audit-logs", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRejectedFieldPatchLeavesWizardUntouched(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodPost, "/api/wizard", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/api/wizard/" + body["id"].(string)

	rec, body = s.do(http.MethodPatch, base+"/fields", map[string]string{
		"name":   "Jane",
		"reason": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "field_not_on_current_step", body["error_code"])

	rec, body = s.do(http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "", fields["name"])
	assert.Equal(t, "", fields["reason"])
}
