package foodlog

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slimtrack/slimtrack/internal/blob"
	"github.com/slimtrack/slimtrack/internal/config"
)

type Handler struct {
	store  *Store
	photos blob.Store
	config *config.Config
}

func NewHandler(store *Store, photos blob.Store, cfg *config.Config) *Handler {
	return &Handler{store: store, photos: photos, config: cfg}
}

// HandleList returns logs for ?date=YYYY-MM-DD (default: today).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	var logs []Entry
	if date == "" {
		logs = h.store.TodayLogs()
	} else {
		if !validDate(date) {
			writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
			return
		}
		logs = h.store.LogsByDate(date)
	}

	writeJSON(w, http.StatusOK, map[string][]Entry{"food_logs": logs})
}

// HandleCreate logs a food item.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req Entry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if strings.TrimSpace(req.FoodName) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "food_name is required")
		return
	}
	if !validMealSlot(req.MealSlot) {
		writeError(w, http.StatusBadRequest, "invalid_request", "meal_slot must be breakfast, lunch, dinner or snack")
		return
	}
	if !validSource(req.Source) {
		writeError(w, http.StatusBadRequest, "invalid_request", "unknown source")
		return
	}
	if req.Servings <= 0 {
		req.Servings = 1
	}

	req.ID = uuid.Nil // ids are assigned here, never by the client
	entry := h.store.Add(req)
	writeJSON(w, http.StatusCreated, entry)
}

// HandleUpdate applies a partial update to a log entry.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var req EntryUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.MealSlot != nil && !validMealSlot(*req.MealSlot) {
		writeError(w, http.StatusBadRequest, "invalid_request", "meal_slot must be breakfast, lunch, dinner or snack")
		return
	}
	if req.Servings != nil && *req.Servings <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "servings must be positive")
		return
	}

	entry, err := h.store.Update(id, req)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Food log entry not found")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleDelete removes a log entry and its photo, if any.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Food log entry not found")
		return
	}

	if err := h.store.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Food log entry not found")
		return
	}

	if entry.PhotoKey != "" && h.photos != nil {
		if err := h.photos.DeleteObject(r.Context(), entry.PhotoKey); err != nil {
			log.Printf("WARN foodlog: failed to delete photo %s: %v", entry.PhotoKey, err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary totals calories and macros for ?date= (default today).
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	writeJSON(w, http.StatusOK, h.store.SummaryByDate(date))
}

// HandleListFavorites returns saved foods.
func (h *Handler) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]FavoriteFood{"favorite_foods": h.store.Favorites()})
}

// HandleAddFavorite saves a food for quick logging.
func (h *Handler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req FavoriteFood
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	writeJSON(w, http.StatusCreated, h.store.AddFavorite(req))
}

// HandleRemoveFavorite deletes a saved food.
func (h *Handler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.RemoveFavorite(id); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Favorite not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListEquivalents returns the reference portion table.
func (h *Handler) HandleListEquivalents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]Equivalent{"equivalents": h.store.Equivalents()})
}

// HandlePutPhoto stores a meal photo for an entry. Body is the raw image;
// Content-Type must be one of the allowed MIME types.
func (h *Handler) HandlePutPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	if h.photos == nil {
		writeError(w, http.StatusServiceUnavailable, "photos_unavailable", "Photo storage is not configured")
		return
	}

	contentType := strings.TrimSpace(r.Header.Get("Content-Type"))
	if !h.mimeAllowed(contentType) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type",
			fmt.Sprintf("Content-Type must be one of: %s", h.config.PhotoAllowedMime))
		return
	}

	maxBytes := int64(h.config.PhotoMaxMB) << 20
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to read body")
		return
	}
	if int64(len(data)) > maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "too_large",
			fmt.Sprintf("Photo exceeds %d MB", h.config.PhotoMaxMB))
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "Empty body")
		return
	}

	if _, err := h.store.Get(id); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Food log entry not found")
		return
	}

	key := fmt.Sprintf("photos/%s/%s", id, uuid.NewString())
	if _, err := h.photos.PutObject(r.Context(), key, data, contentType); err != nil {
		log.Printf("WARN foodlog: photo upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to store photo")
		return
	}

	entry, err := h.store.SetPhotoKey(id, key)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Food log entry not found")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleGetPhoto streams the photo for an entry.
func (h *Handler) HandleGetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	if h.photos == nil {
		writeError(w, http.StatusServiceUnavailable, "photos_unavailable", "Photo storage is not configured")
		return
	}

	entry, err := h.store.Get(id)
	if err != nil || entry.PhotoKey == "" {
		writeError(w, http.StatusNotFound, "not_found", "Photo not found")
		return
	}

	data, contentType, err := h.photos.GetObject(r.Context(), entry.PhotoKey)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Photo not found")
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) mimeAllowed(contentType string) bool {
	for _, m := range strings.Split(h.config.PhotoAllowedMime, ",") {
		if strings.TrimSpace(m) == contentType {
			return true
		}
	}
	return false
}

func entryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid entry id")
		return uuid.Nil, false
	}
	return id, true
}

func validDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

func validMealSlot(slot string) bool {
	switch slot {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

func validSource(source string) bool {
	switch source {
	case SourceSearch, SourceBarcode, SourcePhoto, SourceCustom, SourceMealPlan:
		return true
	}
	return false
}

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
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
