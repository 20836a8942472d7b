package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"proxymint/internal/domain"
)

type createControllerRequest struct {
	Owner            domain.Account `json:"owner"`
	ProxyLedger      domain.Account `json:"proxy_ledger"`
	GovernanceLedger domain.Account `json:"governance_ledger"`
	Store            domain.Account `json:"store"`
	FeeBeneficiary   domain.Account `json:"fee_beneficiary"`
	MintFee          int64          `json:"mint_fee"`
	BurnFee          int64          `json:"burn_fee"`
}

func (h *Handler) createController(w http.ResponseWriter, r *http.Request) {
	var req createControllerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.controllers.CreateController(r.Context(), req.Owner, req.ProxyLedger, req.GovernanceLedger, req.Store, req.FeeBeneficiary, req.MintFee, req.BurnFee)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, controllerToAPI(c))
}

func (h *Handler) getController(w http.ResponseWriter, r *http.Request) {
	c, err := h.controllers.Controller(r.Context(), accountParam(r, "controller"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, controllerToAPI(c))
}

// controllerRole groups the authorize/deauthorize/check operations for one
// of the four lifecycle roles.
type controllerRole struct {
	authorize   func(context.Context, domain.Account, domain.Account) error
	deauthorize func(context.Context, domain.Account, domain.Account) error
	check       func(context.Context, domain.Account, domain.Account) (bool, error)
}

func (h *Handler) roleRoutes(role controllerRole) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var body roleMemberRequest
			if !decodeJSON(w, req, &body) {
				return
			}
			if err := role.authorize(req.Context(), accountParam(req, "controller"), body.Account); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
		})
		r.Delete("/{account}", func(w http.ResponseWriter, req *http.Request) {
			if err := role.deauthorize(req.Context(), accountParam(req, "controller"), accountParam(req, "account")); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/{account}", func(w http.ResponseWriter, req *http.Request) {
			ok, err := role.check(req.Context(), accountParam(req, "controller"), accountParam(req, "account"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"authorized": ok})
		})
	}
}

type setFeeRequest struct {
	Fee int64 `json:"fee"`
}

func (h *Handler) setMintFee(w http.ResponseWriter, r *http.Request) {
	var req setFeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.controllers.SetMintFee(r.Context(), accountParam(r, "controller"), req.Fee); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) setBurnFee(w http.ResponseWriter, r *http.Request) {
	var req setFeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.controllers.SetBurnFee(r.Context(), accountParam(r, "controller"), req.Fee); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type setFeeBeneficiaryRequest struct {
	Beneficiary domain.Account `json:"beneficiary"`
}

func (h *Handler) setFeeBeneficiary(w http.ResponseWriter, r *http.Request) {
	var req setFeeBeneficiaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.controllers.SetFeeBeneficiary(r.Context(), accountParam(r, "controller"), req.Beneficiary); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createLifecycleRequest struct {
	Beneficiary domain.Account `json:"beneficiary"`
	Amount      int64          `json:"amount"`
	Payload     string         `json:"payload"`
}

type transitionRequest struct {
	Payload string `json:"payload"`
}

// lifecycleOps groups the per-kind request lifecycle operations.
type lifecycleOps struct {
	create  func(context.Context, domain.Account, domain.Account, int64, string) (int64, error)
	fulfill func(context.Context, domain.Account, int64, string) error
	cancel  func(context.Context, domain.Account, int64, string) error
	reject  func(context.Context, domain.Account, int64, string) error
	get     func(context.Context, domain.Account, int64) (*domain.Request, error)
	count   func(context.Context, domain.Account) (int64, error)
}

func (h *Handler) lifecycleRoutes(ops lifecycleOps) func(chi.Router) {
	transition := func(fn func(context.Context, domain.Account, int64, string) error) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			id, ok := idParam(w, req)
			if !ok {
				return
			}
			var body transitionRequest
			if !decodeJSON(w, req, &body) {
				return
			}
			if err := fn(req.Context(), accountParam(req, "controller"), id, body.Payload); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		}
	}

	return func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var body createLifecycleRequest
			if !decodeJSON(w, req, &body) {
				return
			}
			id, err := ops.create(req.Context(), accountParam(req, "controller"), body.Beneficiary, body.Amount, body.Payload)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
		})
		r.Get("/count", func(w http.ResponseWriter, req *http.Request) {
			n, err := ops.count(req.Context(), accountParam(req, "controller"))
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
			rec, err := ops.get(req.Context(), accountParam(req, "controller"), id)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, requestToAPI(rec))
		})
		r.Post("/{id}/fulfill", transition(ops.fulfill))
		r.Post("/{id}/cancel", transition(ops.cancel))
		r.Post("/{id}/reject", transition(ops.reject))
	}
}

func (h *Handler) controllerRoutes(r chi.Router) {
	r.Post("/", h.createController)
	r.Route("/{controller}", func(r chi.Router) {
		r.Get("/", h.getController)

		r.Route("/mint-requesters", h.roleRoutes(controllerRole{
			authorize:   h.controllers.AuthorizeMintRequester,
			deauthorize: h.controllers.DeauthorizeMintRequester,
			check:       h.controllers.IsMintRequester,
		}))
		r.Route("/mint-fulfillers", h.roleRoutes(controllerRole{
			authorize:   h.controllers.AuthorizeMintFulfiller,
			deauthorize: h.controllers.DeauthorizeMintFulfiller,
			check:       h.controllers.IsMintFulfiller,
		}))
		r.Route("/burn-requesters", h.roleRoutes(controllerRole{
			authorize:   h.controllers.AuthorizeBurnRequester,
			deauthorize: h.controllers.DeauthorizeBurnRequester,
			check:       h.controllers.IsBurnRequester,
		}))
		r.Route("/burn-fulfillers", h.roleRoutes(controllerRole{
			authorize:   h.controllers.AuthorizeBurnFulfiller,
			deauthorize: h.controllers.DeauthorizeBurnFulfiller,
			check:       h.controllers.IsBurnFulfiller,
		}))

		r.Put("/mint-fee", h.setMintFee)
		r.Put("/burn-fee", h.setBurnFee)
		r.Put("/fee-beneficiary", h.setFeeBeneficiary)

		r.Route("/mint-requests", h.lifecycleRoutes(lifecycleOps{
			create:  h.controllers.CreateMintRequest,
			fulfill: h.controllers.FulfillMintRequest,
			cancel:  h.controllers.CancelMintRequest,
			reject:  h.controllers.RejectMintRequest,
			get:     h.controllers.MintRequest,
			count:   h.controllers.MintRequestCount,
		}))
		r.Route("/burn-requests", h.lifecycleRoutes(lifecycleOps{
			create:  h.controllers.CreateBurnRequest,
			fulfill: h.controllers.FulfillBurnRequest,
			cancel:  h.controllers.CancelBurnRequest,
			reject:  h.controllers.RejectBurnRequest,
			get:     h.controllers.BurnRequest,
			count:   h.controllers.BurnRequestCount,
		}))
	})
}
