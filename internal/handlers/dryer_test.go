package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/service"
)

func fptrT(v float64) *float64 { return &v }

func TestHealth(t *testing.T) {
	s := &service.Service{}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != statusOK {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestGetData_OpenAccess(t *testing.T) {
	dash := &mockDashboard{data: models.DashboardData{
		InletTempF:        fptrT(113.9),
		OutletTempF:       fptrT(100.76),
		InletMoisturePct:  fptrT(17.5),
		OutletMoisturePct: fptrT(12.25),
		BushelsPerHr:      640,
		Simulated:         true,
	}}
	s := &service.Service{Dashboard: dash}
	r := newTestRouter(s)

	// No Authorization header on purpose: the kiosk has no credentials.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got models.DashboardData
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.BushelsPerHr != 640 || !got.Simulated {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.InletTempF == nil || *got.InletTempF != 113.9 {
		t.Fatalf("inlet_temp_F=%v", got.InletTempF)
	}
}

func TestGetSensors(t *testing.T) {
	dash := &mockDashboard{reading: models.Reading{
		Timestamp: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		InletC:    fptrT(45.5),
		OutletV:   fptrT(1.21),
		Errors:    []string{"inlet_v: read failed"},
	}}
	s := &service.Service{Dashboard: dash}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sensors", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got models.Reading
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.InletC == nil || *got.InletC != 45.5 {
		t.Fatalf("inlet_c=%v", got.InletC)
	}
	if got.OutletC != nil {
		t.Fatalf("outlet_c should serialize as null, got %v", *got.OutletC)
	}
	if len(got.Errors) != 1 {
		t.Fatalf("errors=%v", got.Errors)
	}
}

func TestAugerEndpoints(t *testing.T) {
	auger := service.NewAugerState()
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Auger: auger}
	r := newTestRouter(s)

	// Requires auth.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auger", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	set := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auger", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer valid")
		r.ServeHTTP(w, req)
		return w
	}

	w = set(`{"pct": 62.5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("set status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp map[string]float64
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["pct"] != 62.5 {
		t.Fatalf("pct=%v", resp["pct"])
	}

	w = doAuthed(r, http.MethodGet, "/api/v1/auger")
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["pct"] != 62.5 {
		t.Fatalf("get pct=%v", resp["pct"])
	}

	t.Run("out of range", func(t *testing.T) {
		for _, body := range []string{`{"pct": -1}`, `{"pct": 101}`} {
			if w := set(body); w.Code != http.StatusBadRequest {
				t.Fatalf("%s: status=%d", body, w.Code)
			}
		}
	})

	t.Run("missing pct", func(t *testing.T) {
		if w := set(`{}`); w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d", w.Code)
		}
	})

	t.Run("zero is valid", func(t *testing.T) {
		if w := set(`{"pct": 0}`); w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if auger.Pct() != 0 {
			t.Fatalf("pct=%v", auger.Pct())
		}
	})
}
