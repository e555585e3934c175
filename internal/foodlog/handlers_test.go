package foodlog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/slimtrack/slimtrack/internal/config"
)

func newTestHandler() *Handler {
	return NewHandler(NewStore(), nil, &config.Config{})
}

func TestHandleCreateAssignsID(t *testing.T) {
	h := newTestHandler()

	body := `{"food_name":"Rice","calories":280,"meal_slot":"lunch","source":"search"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/food-logs", strings.NewReader(body))
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var entry Entry
	if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("expected server-assigned id")
	}
	if entry.Servings != 1 {
		t.Fatalf("servings = %v, want default 1", entry.Servings)
	}
}

func TestHandleCreateRejectsBadMealSlot(t *testing.T) {
	h := newTestHandler()

	body := `{"food_name":"Rice","calories":280,"meal_slot":"brunch","source":"search"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/food-logs", strings.NewReader(body))
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUpdateUnknownEntry(t *testing.T) {
	h := newTestHandler()

	id := uuid.New().String()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/v1/food-logs/"+id, strings.NewReader(`{"calories":100}`))
	req.SetPathValue("id", id)
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Error.Code != "not_found" {
		t.Fatalf("error code = %q, want not_found", resp.Error.Code)
	}
}

func TestHandleDeleteUnknownEntry(t *testing.T) {
	h := newTestHandler()

	id := uuid.New().String()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/food-logs/"+id, nil)
	req.SetPathValue("id", id)
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
