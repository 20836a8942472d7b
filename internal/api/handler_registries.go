package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"proxymint/internal/domain"
)

type createRegistryRequest struct {
	Owner domain.Account `json:"owner"`
}

func (h *Handler) createRegistry(w http.ResponseWriter, r *http.Request) {
	var req createRegistryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reg, err := h.registries.CreateRegistry(r.Context(), req.Owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"address": reg.Address,
		"owner":   reg.Owner,
	})
}

type registerTokenRequest struct {
	Ledger     domain.Account `json:"ledger"`
	Controller domain.Account `json:"controller"`
}

func (h *Handler) registerToken(w http.ResponseWriter, r *http.Request) {
	var req registerTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.registries.Register(r.Context(), accountParam(r, "registry"), req.Ledger, req.Controller); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) unregisterToken(w http.ResponseWriter, r *http.Request) {
	if err := h.registries.Unregister(r.Context(), accountParam(r, "registry"), accountParam(r, "ledger")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type setControllerRequest struct {
	Controller domain.Account `json:"controller"`
}

func (h *Handler) setTokenController(w http.ResponseWriter, r *http.Request) {
	var req setControllerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.registries.SetController(r.Context(), accountParam(r, "registry"), accountParam(r, "ledger"), req.Controller); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getTokenByName(w http.ResponseWriter, r *http.Request) {
	entry, err := h.registries.GetToken(r.Context(), accountParam(r, "registry"), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registryEntryToAPI(entry))
}

func (h *Handler) getTokenName(w http.ResponseWriter, r *http.Request) {
	name, err := h.registries.GetTokenName(r.Context(), accountParam(r, "registry"), accountParam(r, "ledger"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token_name": name})
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	filter := domain.EventFilter{
		Scope: r.URL.Query().Get("scope"),
		Name:  r.URL.Query().Get("name"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	evts, err := h.events.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]eventResponse, 0, len(evts))
	for _, e := range evts {
		out = append(out, eventToAPI(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

func (h *Handler) registryRoutes(r chi.Router) {
	r.Post("/", h.createRegistry)
	r.Route("/{registry}", func(r chi.Router) {
		r.Post("/tokens", h.registerToken)
		r.Get("/tokens/by-name/{name}", h.getTokenByName)
		r.Get("/tokens/{ledger}/name", h.getTokenName)
		r.Put("/tokens/{ledger}/controller", h.setTokenController)
		r.Delete("/tokens/{ledger}", h.unregisterToken)
	})
}
