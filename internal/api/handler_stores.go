package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"proxymint/internal/domain"
)

type createStoreRequest struct {
	Owner domain.Account `json:"owner"`
}

func (h *Handler) createStore(w http.ResponseWriter, r *http.Request) {
	var req createStoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	store, err := h.stores.CreateStore(r.Context(), req.Owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, storeToAPI(store))
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	store, err := h.stores.Store(r.Context(), accountParam(r, "store"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, storeToAPI(store))
}

func (h *Handler) authorizeWriter(w http.ResponseWriter, r *http.Request) {
	var req roleMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.stores.AuthorizeWriter(r.Context(), accountParam(r, "store"), req.Account); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) deauthorizeWriter(w http.ResponseWriter, r *http.Request) {
	if err := h.stores.DeauthorizeWriter(r.Context(), accountParam(r, "store"), accountParam(r, "account")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) isWriter(w http.ResponseWriter, r *http.Request) {
	ok, err := h.stores.IsWriter(r.Context(), accountParam(r, "store"), accountParam(r, "account"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authorized": ok})
}

type setDetailsRequest struct {
	Requester   domain.Account `json:"requester"`
	Beneficiary domain.Account `json:"beneficiary"`
	Amount      int64          `json:"amount"`
	Payload     string         `json:"payload"`
}

type setStatusRequest struct {
	Status  domain.RequestStatus `json:"status"`
	Payload string               `json:"payload"`
}

func (h *Handler) storeRequestRoutes(kind domain.RequestKind) func(chi.Router) {
	create := h.stores.CreateMintRequest
	setDetails := h.stores.SetMintRequestDetails
	setStatus := h.stores.SetMintRequestStatus
	get := h.stores.MintRequest
	count := h.stores.MintRequestCount
	if kind == domain.KindBurn {
		create = h.stores.CreateBurnRequest
		setDetails = h.stores.SetBurnRequestDetails
		setStatus = h.stores.SetBurnRequestStatus
		get = h.stores.BurnRequest
		count = h.stores.BurnRequestCount
	}

	return func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			id, err := create(req.Context(), accountParam(req, "store"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
		})
		r.Get("/count", func(w http.ResponseWriter, req *http.Request) {
			n, err := count(req.Context(), accountParam(req, "store"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]int64{"count": n})
		})
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, ok := idParam(w, req)
			if !ok {
				return
			}
			rec, err := get(req.Context(), accountParam(req, "store"), id)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, requestToAPI(rec))
		})
		r.Put("/{id}/details", func(w http.ResponseWriter, req *http.Request) {
			id, ok := idParam(w, req)
			if !ok {
				return
			}
			var body setDetailsRequest
			if !decodeJSON(w, req, &body) {
				return
			}
			if err := setDetails(req.Context(), accountParam(req, "store"), id, body.Requester, body.Beneficiary, body.Amount, body.Payload); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Put("/{id}/status", func(w http.ResponseWriter, req *http.Request) {
			id, ok := idParam(w, req)
			if !ok {
				return
			}
			var body setStatusRequest
			if !decodeJSON(w, req, &body) {
				return
			}
			if err := setStatus(req.Context(), accountParam(req, "store"), id, body.Status, body.Payload); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	}
}

func (h *Handler) storeRoutes(r chi.Router) {
	r.Post("/", h.createStore)
	r.Route("/{store}", func(r chi.Router) {
		r.Get("/", h.getStore)
		r.Post("/writers", h.authorizeWriter)
		r.Get("/writers/{account}", h.isWriter)
		r.Delete("/writers/{account}", h.deauthorizeWriter)
		r.Route("/mint-requests", h.storeRequestRoutes(domain.KindMint))
		r.Route("/burn-requests", h.storeRequestRoutes(domain.KindBurn))
	})
}
