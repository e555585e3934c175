package auth

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/slimtrack/slimtrack/internal/accounts"
	"github.com/slimtrack/slimtrack/internal/config"
)

type Handlers struct {
	config   *config.Config
	service  *Service
	registry *accounts.Registry
}

func NewHandlers(cfg *config.Config, service *Service, registry *accounts.Registry) *Handlers {
	return &Handlers{config: cfg, service: service, registry: registry}
}

// HandleDevAuth handles POST /v1/auth/dev. Disabled unless
// AUTH_MODE=dev. The account is upserted into the registry so a
// follow-up switch can load its snapshot.
func (h *Handlers) HandleDevAuth(w http.ResponseWriter, r *http.Request) {
	if h.config.AuthMode != "dev" {
		writeErrorResponse(w, http.StatusNotFound, "not_found", "dev auth is disabled")
		return
	}

	var req DevSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.AccountID == "" {
		req.AccountID = "local:dev"
	}
	if req.Provider == "" {
		req.Provider = accounts.ProviderLocal
	}

	if err := h.registry.Upsert(r.Context(), accounts.Account{
		ID:          req.AccountID,
		Provider:    req.Provider,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	}); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	resp, err := h.service.SignInDev(req.AccountID)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
