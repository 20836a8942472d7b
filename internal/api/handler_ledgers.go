package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"proxymint/internal/domain"
)

type createLedgerRequest struct {
	Owner         domain.Account `json:"owner"`
	Name          string         `json:"name"`
	Symbol        string         `json:"symbol"`
	Decimals      int            `json:"decimals"`
	InitialSupply int64          `json:"initial_supply"`
}

func (h *Handler) createLedger(w http.ResponseWriter, r *http.Request) {
	var req createLedgerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	l, err := h.ledgers.Create(r.Context(), req.Owner, req.Name, req.Symbol, req.Decimals, req.InitialSupply)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ledgerToAPI(l))
}

func (h *Handler) getLedger(w http.ResponseWriter, r *http.Request) {
	l, err := h.ledgers.Get(r.Context(), accountParam(r, "ledger"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ledgerToAPI(l))
}

func (h *Handler) getTotalSupply(w http.ResponseWriter, r *http.Request) {
	supply, err := h.ledgers.TotalSupply(r.Context(), accountParam(r, "ledger"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total_supply": supply})
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledgers.BalanceOf(r.Context(), accountParam(r, "ledger"), accountParam(r, "account"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

type transferRequest struct {
	From   domain.Account `json:"from,omitempty"`
	To     domain.Account `json:"to"`
	Amount int64          `json:"amount"`
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.Transfer(r.Context(), accountParam(r, "ledger"), req.To, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) transferFrom(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.TransferFrom(r.Context(), accountParam(r, "ledger"), req.From, req.To, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type allowanceRequest struct {
	Spender domain.Account `json:"spender"`
	Amount  int64          `json:"amount"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	var req allowanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.Approve(r.Context(), accountParam(r, "ledger"), req.Spender, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) increaseAllowance(w http.ResponseWriter, r *http.Request) {
	var req allowanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.IncreaseAllowance(r.Context(), accountParam(r, "ledger"), req.Spender, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decreaseAllowance(w http.ResponseWriter, r *http.Request) {
	var req allowanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.DecreaseAllowance(r.Context(), accountParam(r, "ledger"), req.Spender, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getAllowance(w http.ResponseWriter, r *http.Request) {
	amount, err := h.ledgers.Allowance(r.Context(), accountParam(r, "ledger"), accountParam(r, "owner"), accountParam(r, "spender"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"allowance": amount})
}

type mintRequest struct {
	To     domain.Account `json:"to"`
	Amount int64          `json:"amount"`
}

func (h *Handler) mint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.Mint(r.Context(), accountParam(r, "ledger"), req.To, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type burnRequest struct {
	Owner  domain.Account `json:"owner,omitempty"`
	Amount int64          `json:"amount"`
}

func (h *Handler) burn(w http.ResponseWriter, r *http.Request) {
	var req burnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.Burn(r.Context(), accountParam(r, "ledger"), req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) burnFrom(w http.ResponseWriter, r *http.Request) {
	var req burnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.BurnFrom(r.Context(), accountParam(r, "ledger"), req.Owner, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type burnAllowanceRequest struct {
	Burner domain.Account `json:"burner"`
	Amount int64          `json:"amount"`
}

func (h *Handler) increaseBurnAllowance(w http.ResponseWriter, r *http.Request) {
	var req burnAllowanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.IncreaseBurnAllowance(r.Context(), accountParam(r, "ledger"), req.Burner, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decreaseBurnAllowance(w http.ResponseWriter, r *http.Request) {
	var req burnAllowanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.DecreaseBurnAllowance(r.Context(), accountParam(r, "ledger"), req.Burner, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getBurnAllowance(w http.ResponseWriter, r *http.Request) {
	amount, err := h.ledgers.BurnAllowance(r.Context(), accountParam(r, "ledger"), accountParam(r, "owner"), accountParam(r, "burner"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"burn_allowance": amount})
}

type roleMemberRequest struct {
	Account domain.Account `json:"account"`
}

func (h *Handler) addMinter(w http.ResponseWriter, r *http.Request) {
	var req roleMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.AddMinter(r.Context(), accountParam(r, "ledger"), req.Account); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) removeMinter(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgers.RemoveMinter(r.Context(), accountParam(r, "ledger"), accountParam(r, "account")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) renounceMinter(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgers.RenounceMinter(r.Context(), accountParam(r, "ledger")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) isMinter(w http.ResponseWriter, r *http.Request) {
	ok, err := h.ledgers.IsMinter(r.Context(), accountParam(r, "ledger"), accountParam(r, "account"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authorized": ok})
}

func (h *Handler) addBurner(w http.ResponseWriter, r *http.Request) {
	var req roleMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ledgers.AddBurner(r.Context(), accountParam(r, "ledger"), req.Account); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) removeBurner(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgers.RemoveBurner(r.Context(), accountParam(r, "ledger"), accountParam(r, "account")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) renounceBurner(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgers.RenounceBurner(r.Context(), accountParam(r, "ledger")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) isBurner(w http.ResponseWriter, r *http.Request) {
	ok, err := h.ledgers.IsBurner(r.Context(), accountParam(r, "ledger"), accountParam(r, "account"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authorized": ok})
}

func (h *Handler) ledgerRoutes(r chi.Router) {
	r.Post("/", h.createLedger)
	r.Route("/{ledger}", func(r chi.Router) {
		r.Get("/", h.getLedger)
		r.Get("/supply", h.getTotalSupply)
		r.Get("/balances/{account}", h.getBalance)
		r.Post("/transfer", h.transfer)
		r.Post("/transfer-from", h.transferFrom)
		r.Post("/approve", h.approve)
		r.Post("/allowances/increase", h.increaseAllowance)
		r.Post("/allowances/decrease", h.decreaseAllowance)
		r.Get("/allowances/{owner}/{spender}", h.getAllowance)
		r.Post("/mint", h.mint)
		r.Post("/burn", h.burn)
		r.Post("/burn-from", h.burnFrom)
		r.Post("/burn-allowances/increase", h.increaseBurnAllowance)
		r.Post("/burn-allowances/decrease", h.decreaseBurnAllowance)
		r.Get("/burn-allowances/{owner}/{burner}", h.getBurnAllowance)
		r.Post("/minters", h.addMinter)
		r.Post("/minters/renounce", h.renounceMinter)
		r.Get("/minters/{account}", h.isMinter)
		r.Delete("/minters/{account}", h.removeMinter)
		r.Post("/burners", h.addBurner)
		r.Post("/burners/renounce", h.renounceBurner)
		r.Get("/burners/{account}", h.isBurner)
		r.Delete("/burners/{account}", h.removeBurner)
	})
}
