package snapshot

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/slimtrack/slimtrack/internal/accounts"
)

// Handler обслуживает /v1/accounts.
type Handler struct {
	manager  *Manager
	registry *accounts.Registry
}

func NewHandler(manager *Manager, registry *accounts.Registry) *Handler {
	return &Handler{manager: manager, registry: registry}
}

// AccountsResponse — ответ для GET /v1/accounts.
type AccountsResponse struct {
	Accounts  []accounts.Account `json:"accounts"`
	CurrentID string             `json:"current_id,omitempty"`
}

// SwitchRequest — тело для POST /v1/accounts/switch.
type SwitchRequest struct {
	AccountID string `json:"account_id"`
}

// SwitchResponse reports per-collection load status after a switch.
type SwitchResponse struct {
	AccountID string     `json:"account_id"`
	Load      LoadResult `json:"load"`
}

// HandleList — GET /v1/accounts.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AccountsResponse{
		Accounts:  h.registry.List(),
		CurrentID: h.registry.CurrentID(),
	})
}

// HandleSwitch — POST /v1/accounts/switch.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	var req SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "missing_account_id", "account_id is required")
		return
	}

	result, err := h.manager.SwitchTo(r.Context(), req.AccountID)
	if err != nil {
		if errors.Is(err, accounts.ErrUnknownAccount) {
			writeError(w, http.StatusNotFound, "unknown_account", "account is not registered")
			return
		}
		log.Printf("WARN account switch failed: %v", err)
		writeError(w, http.StatusInternalServerError, "switch_failed", "failed to switch account")
		return
	}

	writeJSON(w, http.StatusOK, SwitchResponse{AccountID: req.AccountID, Load: result})
}

// HandleSignOut — POST /v1/accounts/signout.
func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.SignOut(r.Context()); err != nil {
		log.Printf("WARN sign-out failed: %v", err)
		writeError(w, http.StatusInternalServerError, "signout_failed", "failed to sign out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
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
