package exerciselog

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Handler обслуживает /v1/exercise-logs.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// HandleList — GET /v1/exercise-logs?date=YYYY-MM-DD (default: today UTC).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": h.store.LogsByDate(date)})
}

// HandleCreate — POST /v1/exercise-logs.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req Entry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing_name", "name is required")
		return
	}
	if req.DurationMin <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_duration", "duration_min must be positive")
		return
	}
	if req.CaloriesBurned < 0 {
		writeError(w, http.StatusBadRequest, "invalid_calories", "calories_burned must not be negative")
		return
	}
	if req.Source == "" {
		req.Source = SourceManual
	}
	if !validSource(req.Source) {
		writeError(w, http.StatusBadRequest, "invalid_source", "unknown source")
		return
	}

	req.ID = uuid.Nil
	entry := h.store.Add(req)
	log.Printf("INFO exercise log created id=%s name=%q", entry.ID, entry.Name)
	writeJSON(w, http.StatusCreated, entry)
}

// HandleUpdate — PATCH /v1/exercise-logs/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var req EntryUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	entry, err := h.store.Update(id, req)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "exercise log entry not found")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleDelete — DELETE /v1/exercise-logs/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "exercise log entry not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary — GET /v1/exercise-logs/summary?date=YYYY-MM-DD.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	writeJSON(w, http.StatusOK, h.store.SummaryByDate(date))
}

func entryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validSource(s string) bool {
	switch s {
	case SourceManual, SourceHealthKit, SourceGoogleFit, SourceGarmin:
		return true
	}
	return false
}

// ErrorResponse — стандартный конверт ошибки API.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}
