package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// HandleGet returns the active account's profile and flags.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	resp := ProfileResponse{
		Profile:               h.store.Profile(),
		IsOnboardingComplete:  h.store.IsOnboardingComplete(),
		HasActiveSubscription: h.store.HasActiveSubscription(),
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandlePut replaces the profile (onboarding completion / settings save).
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req Profile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if err := validateProfile(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		req.ID = uuid.NewString()
	}

	stored := h.store.SetProfile(req)
	writeJSON(w, http.StatusOK, stored)
}

// HandlePatch applies a partial profile update.
func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var req ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if err := validateUpdate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.store.UpdateProfile(req)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			writeError(w, http.StatusNotFound, "not_found", "No profile set")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleCompleteOnboarding marks onboarding as done.
func (h *Handler) HandleCompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	h.store.CompleteOnboarding()
	writeJSON(w, http.StatusOK, map[string]bool{"is_onboarding_complete": true})
}

// HandlePutSubscription sets the subscription flag (paywall callback).
func (h *Handler) HandlePutSubscription(w http.ResponseWriter, r *http.Request) {
	var req SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	h.store.SetSubscription(req.Active)
	writeJSON(w, http.StatusOK, map[string]bool{"has_active_subscription": req.Active})
}

// HandleListWeightLogs returns the weight history, newest first.
func (h *Handler) HandleListWeightLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]WeightLog{"weight_logs": h.store.WeightHistory()})
}

// HandleAddWeightLog records a new weight measurement.
func (h *Handler) HandleAddWeightLog(w http.ResponseWriter, r *http.Request) {
	var req WeightLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.WeightKg <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "weight_kg must be positive")
		return
	}

	entry, err := h.store.AddWeightLog(req)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			writeError(w, http.StatusNotFound, "not_found", "No profile set")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func validateProfile(p *Profile) error {
	if p.Gender != "male" && p.Gender != "female" {
		return errors.New("gender must be male or female")
	}
	if p.Age <= 0 {
		return errors.New("age must be positive")
	}
	if p.HeightCm <= 0 {
		return errors.New("height_cm must be positive")
	}
	if p.WeightKg <= 0 {
		return errors.New("weight_kg must be positive")
	}
	if !validActivityLevel(p.ActivityLevel) {
		return errors.New("activity_level must be one of 1.2, 1.375, 1.55, 1.725, 1.9")
	}
	return nil
}

func validateUpdate(u *ProfileUpdate) error {
	if u.Gender != nil && *u.Gender != "male" && *u.Gender != "female" {
		return errors.New("gender must be male or female")
	}
	if u.Age != nil && *u.Age <= 0 {
		return errors.New("age must be positive")
	}
	if u.HeightCm != nil && *u.HeightCm <= 0 {
		return errors.New("height_cm must be positive")
	}
	if u.WeightKg != nil && *u.WeightKg <= 0 {
		return errors.New("weight_kg must be positive")
	}
	if u.ActivityLevel != nil && !validActivityLevel(*u.ActivityLevel) {
		return errors.New("activity_level must be one of 1.2, 1.375, 1.55, 1.725, 1.9")
	}
	return nil
}

func validActivityLevel(v float64) bool {
	switch v {
	case 1.2, 1.375, 1.55, 1.725, 1.9:
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
