package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slimtrack/slimtrack/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Port:                8080,
		AuthMode:            "none",
		Blob:                config.BlobConfig{Mode: "local"},
		ReportsMaxRangeDays: 90,
	}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", resp["status"])
	}
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestProfileLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// No profile yet
	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("empty profile: expected 200, got %d", w.Code)
	}
	var empty struct {
		Profile *json.RawMessage `json:"profile"`
	}
	if err := json.NewDecoder(w.Body).Decode(&empty); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if empty.Profile != nil {
		t.Fatalf("expected null profile, got %s", *empty.Profile)
	}

	// Create profile
	body := `{"gender":"female","age":30,"height_cm":165,"weight_kg":65,"activity_level":1.375,"weight_loss_speed_kg":0.5}`
	req = httptest.NewRequest(http.MethodPut, "/v1/profile", bytes.NewBufferString(body))
	w = httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("put profile: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Read it back with derived fields
	req = httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	w = httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get profile: expected 200, got %d", w.Code)
	}

	var resp struct {
		Profile struct {
			BMR                float64 `json:"bmr"`
			DailyCalorieTarget float64 `json:"daily_calorie_target"`
		} `json:"profile"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Profile.BMR != 1370.25 {
		t.Errorf("bmr = %v, want 1370.25", resp.Profile.BMR)
	}
	if resp.Profile.DailyCalorieTarget != 1334.09375 {
		t.Errorf("daily target = %v, want 1334.09375", resp.Profile.DailyCalorieTarget)
	}
}

func TestAccountSwitchOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// Unknown account
	req := httptest.NewRequest(http.MethodPost, "/v1/accounts/switch", bytes.NewBufferString(`{"account_id":"nobody"}`))
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown account: expected 404, got %d", w.Code)
	}

	// Empty registry list
	req = httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
	w = httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list accounts: expected 200, got %d", w.Code)
	}
}
