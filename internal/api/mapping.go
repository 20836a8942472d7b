package api

import (
	"time"

	"proxymint/internal/domain"
)

// --- response shapes ---

type ledgerResponse struct {
	Address   domain.Account `json:"address"`
	Owner     domain.Account `json:"owner"`
	Name      string         `json:"name"`
	Symbol    string         `json:"symbol"`
	Decimals  int            `json:"decimals"`
	CreatedAt time.Time      `json:"created_at"`
}

type storeResponse struct {
	Address   domain.Account `json:"address"`
	Owner     domain.Account `json:"owner"`
	CreatedAt time.Time      `json:"created_at"`
}

type controllerResponse struct {
	Address          domain.Account `json:"address"`
	Owner            domain.Account `json:"owner"`
	ProxyLedger      domain.Account `json:"proxy_ledger"`
	GovernanceLedger domain.Account `json:"governance_ledger"`
	Store            domain.Account `json:"store"`
	FeeBeneficiary   domain.Account `json:"fee_beneficiary"`
	MintFee          int64          `json:"mint_fee"`
	BurnFee          int64          `json:"burn_fee"`
	CreatedAt        time.Time      `json:"created_at"`
}

type requestResponse struct {
	Kind           domain.RequestKind   `json:"kind"`
	ID             int64                `json:"id"`
	Requester      domain.Account       `json:"requester"`
	Beneficiary    domain.Account       `json:"beneficiary"`
	Amount         int64                `json:"amount"`
	Status         domain.RequestStatus `json:"status"`
	CreatePayload  string               `json:"create_payload,omitempty"`
	FulfillPayload string               `json:"fulfill_payload,omitempty"`
	CancelPayload  string               `json:"cancel_payload,omitempty"`
	RejectPayload  string               `json:"reject_payload,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type registryEntryResponse struct {
	TokenName  string         `json:"token_name"`
	Ledger     domain.Account `json:"ledger"`
	Controller domain.Account `json:"controller"`
	CreatedAt  time.Time      `json:"created_at"`
}

type eventResponse struct {
	ID        string         `json:"id"`
	Scope     string         `json:"scope"`
	Name      string         `json:"name"`
	Account   domain.Account `json:"account,omitempty"`
	From      domain.Account `json:"from,omitempty"`
	To        domain.Account `json:"to,omitempty"`
	Amount    int64          `json:"amount"`
	RequestID *int64         `json:"request_id,omitempty"`
	TokenName string         `json:"token_name,omitempty"`
	Payload   string         `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func ledgerToAPI(l *domain.Ledger) ledgerResponse {
	return ledgerResponse{
		Address:   l.Address,
		Owner:     l.Owner,
		Name:      l.Name,
		Symbol:    l.Symbol,
		Decimals:  l.Decimals,
		CreatedAt: l.CreatedAt,
	}
}

func storeToAPI(s *domain.RequestStore) storeResponse {
	return storeResponse{Address: s.Address, Owner: s.Owner, CreatedAt: s.CreatedAt}
}

func controllerToAPI(c *domain.Controller) controllerResponse {
	return controllerResponse{
		Address:          c.Address,
		Owner:            c.Owner,
		ProxyLedger:      c.ProxyLedger,
		GovernanceLedger: c.GovernanceLedger,
		Store:            c.Store,
		FeeBeneficiary:   c.FeeBeneficiary,
		MintFee:          c.MintFee,
		BurnFee:          c.BurnFee,
		CreatedAt:        c.CreatedAt,
	}
}

func requestToAPI(r *domain.Request) requestResponse {
	return requestResponse{
		Kind:           r.Kind,
		ID:             r.ID,
		Requester:      r.Requester,
		Beneficiary:    r.Beneficiary,
		Amount:         r.Amount,
		Status:         r.Status,
		CreatePayload:  r.CreatePayload,
		FulfillPayload: r.FulfillPayload,
		CancelPayload:  r.CancelPayload,
		RejectPayload:  r.RejectPayload,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func registryEntryToAPI(e *domain.RegistryEntry) registryEntryResponse {
	return registryEntryResponse{
		TokenName:  e.TokenName,
		Ledger:     e.Ledger,
		Controller: e.Controller,
		CreatedAt:  e.CreatedAt,
	}
}

func eventToAPI(e domain.Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		Scope:     e.Scope,
		Name:      e.Name,
		Account:   e.Account,
		From:      e.From,
		To:        e.To,
		Amount:    e.Amount,
		RequestID: e.RequestID,
		TokenName: e.TokenName,
		Payload:   e.Payload,
		CreatedAt: e.CreatedAt,
	}
}
