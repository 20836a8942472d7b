// Package api provides HTTP handlers for the custody REST API.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"proxymint/internal/domain"
	"proxymint/internal/service"
)

// Handler exposes the custody services over HTTP.
type Handler struct {
	capabilities *service.CapabilityService
	ledgers      *service.LedgerService
	stores       *service.RequestStoreService
	controllers  *service.ControllerService
	registries   *service.RegistryService
	events       *service.EventService
}

// NewHandler creates a Handler with all required service dependencies.
func NewHandler(
	capabilities *service.CapabilityService,
	ledgers *service.LedgerService,
	stores *service.RequestStoreService,
	controllers *service.ControllerService,
	registries *service.RegistryService,
	events *service.EventService,
) *Handler {
	return &Handler{
		capabilities: capabilities,
		ledgers:      ledgers,
		stores:       stores,
		controllers:  controllers,
		registries:   registries,
		events:       events,
	}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	writeJSON(w, status, map[string]any{
		"code":    status,
		"message": err.Error(),
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":    http.StatusBadRequest,
			"message": "invalid request body: " + err.Error(),
		})
		return false
	}
	return true
}

func accountParam(r *http.Request, name string) domain.Account {
	return domain.Account(chi.URLParam(r, name))
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":    http.StatusBadRequest,
			"message": "invalid request id",
		})
		return 0, false
	}
	return id, true
}
