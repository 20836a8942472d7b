package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "proxymint/internal/db"
	"proxymint/internal/db/repository"
	"proxymint/internal/domain"
	"proxymint/internal/service"
)

// newTestServer wires the full stack against a fresh database. The auth
// middleware is replaced by one that reads the caller from the X-Caller
// header so tests can act as any account.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, _ := internaldb.OpenTestSQLite(t)

	events := repository.NewEventRepo(db)
	caps := service.NewCapabilityService(repository.NewCapabilityRepo(db), events)
	ledgers := service.NewLedgerService(repository.NewLedgerRepo(db), caps, events)
	stores := service.NewRequestStoreService(repository.NewRequestRepo(db), caps, events)
	controllers := service.NewControllerService(repository.NewControllerRepo(db), ledgers, stores, caps, events)
	registries := service.NewRegistryService(repository.NewRegistryRepo(db), ledgers, events)
	handler := NewHandler(caps, ledgers, stores, controllers, registries, service.NewEventService(events))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if caller := req.Header.Get("X-Caller"); caller != "" {
				req = req.WithContext(domain.WithCaller(req.Context(), domain.Account(caller)))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/v1", handler.Routes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path string, caller domain.Account, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if caller != "" {
		req.Header.Set("X-Caller", string(caller))
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestHandler_LedgerLifecycle(t *testing.T) {
	srv := newTestServer(t)
	owner := domain.NewAccount()
	holder := domain.NewAccount()

	resp, body := doRequest(t, srv, http.MethodPost, "/v1/ledgers", owner, map[string]any{
		"owner":          owner,
		"name":           "Proxy Dollar",
		"symbol":         "PXD",
		"decimals":       2,
		"initial_supply": 1000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ledger := body["address"].(string)
	require.NotEmpty(t, ledger)

	resp, _ = doRequest(t, srv, http.MethodPost, "/v1/ledgers/"+ledger+"/transfer", owner, map[string]any{
		"to":     holder,
		"amount": 250,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/v1/ledgers/%s/balances/%s", ledger, holder), owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(250), body["balance"])

	resp, body = doRequest(t, srv, http.MethodGet, "/v1/ledgers/"+ledger+"/supply", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1000), body["total_supply"])
}

func TestHandler_ErrorMapping(t *testing.T) {
	srv := newTestServer(t)
	owner := domain.NewAccount()
	stranger := domain.NewAccount()

	// unknown ledger -> 404
	resp, _ := doRequest(t, srv, http.MethodGet, "/v1/ledgers/"+string(domain.NewAccount()), owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := doRequest(t, srv, http.MethodPost, "/v1/ledgers", owner, map[string]any{
		"owner":          owner,
		"name":           "Proxy Dollar",
		"symbol":         "PXD",
		"decimals":       2,
		"initial_supply": 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ledger := body["address"].(string)

	// minting without the role -> 403
	resp, _ = doRequest(t, srv, http.MethodPost, "/v1/ledgers/"+ledger+"/mint", stranger, map[string]any{
		"to":     stranger,
		"amount": 10,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// negative amount -> 400
	resp, _ = doRequest(t, srv, http.MethodPost, "/v1/ledgers/"+ledger+"/transfer", owner, map[string]any{
		"to":     stranger,
		"amount": -5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// overspending -> 422
	resp, _ = doRequest(t, srv, http.MethodPost, "/v1/ledgers/"+ledger+"/transfer", owner, map[string]any{
		"to":     stranger,
		"amount": 500,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// duplicate role grant -> 409
	resp, _ = doRequest(t, srv, http.MethodPost, "/v1/ledgers/"+ledger+"/minters", owner, map[string]any{"account": stranger})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doRequest(t, srv, http.MethodPost, "/v1/ledgers/"+ledger+"/minters", owner, map[string]any{"account": stranger})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandler_MintRequestFlow(t *testing.T) {
	srv := newTestServer(t)
	owner := domain.NewAccount()
	requester := domain.NewAccount()
	fulfiller := domain.NewAccount()
	beneficiary := domain.NewAccount()
	feeBeneficiary := domain.NewAccount()

	post := func(path string, caller domain.Account, payload any) map[string]any {
		resp, body := doRequest(t, srv, http.MethodPost, path, caller, payload)
		require.True(t, resp.StatusCode < 300, "POST %s: %d %v", path, resp.StatusCode, body)
		return body
	}

	proxy := post("/v1/ledgers", owner, map[string]any{
		"owner": owner, "name": "Proxy Dollar", "symbol": "PXD", "decimals": 2,
	})["address"].(string)
	governance := post("/v1/ledgers", owner, map[string]any{
		"owner": owner, "name": "Governance Token", "symbol": "GOV", "decimals": 2, "initial_supply": 10000,
	})["address"].(string)
	store := post("/v1/stores", owner, map[string]any{"owner": owner})["address"].(string)

	controller := post("/v1/controllers", owner, map[string]any{
		"owner":             owner,
		"proxy_ledger":      proxy,
		"governance_ledger": governance,
		"store":             store,
		"fee_beneficiary":   feeBeneficiary,
		"mint_fee":          10,
	})["address"].(string)

	post("/v1/stores/"+store+"/writers", owner, map[string]any{"account": controller})
	post("/v1/ledgers/"+proxy+"/minters", owner, map[string]any{"account": controller})
	post("/v1/controllers/"+controller+"/mint-requesters", owner, map[string]any{"account": requester})
	post("/v1/controllers/"+controller+"/mint-fulfillers", owner, map[string]any{"account": fulfiller})

	post("/v1/ledgers/"+governance+"/transfer", owner, map[string]any{"to": requester, "amount": 100})
	post("/v1/ledgers/"+governance+"/approve", requester, map[string]any{"spender": controller, "amount": 100})

	created := post("/v1/controllers/"+controller+"/mint-requests", requester, map[string]any{
		"beneficiary": beneficiary, "amount": 500, "payload": "deposit ref 7",
	})
	id := int64(created["id"].(float64))

	post(fmt.Sprintf("/v1/controllers/%s/mint-requests/%d/fulfill", controller, id), fulfiller, map[string]any{"payload": "done"})

	resp, body := doRequest(t, srv, http.MethodGet, fmt.Sprintf("/v1/controllers/%s/mint-requests/%d", controller, id), owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "FULFILLED", body["status"])

	resp, body = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/v1/ledgers/%s/balances/%s", proxy, beneficiary), owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(500), body["balance"])

	resp, body = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/v1/ledgers/%s/balances/%s", governance, feeBeneficiary), owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(10), body["balance"])
}
