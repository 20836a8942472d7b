package service

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	internaldb "proxymint/internal/db"
	"proxymint/internal/db/repository"
	"proxymint/internal/domain"
)

// fixture wires the full service stack against one fresh test database.
type fixture struct {
	caps        *CapabilityService
	ledgers     *LedgerService
	stores      *RequestStoreService
	controllers *ControllerService
	registries  *RegistryService
	events      domain.EventRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, _ := internaldb.OpenTestSQLite(t)

	events := repository.NewEventRepo(db)
	caps := NewCapabilityService(repository.NewCapabilityRepo(db), events)
	ledgers := NewLedgerService(repository.NewLedgerRepo(db), caps, events)
	stores := NewRequestStoreService(repository.NewRequestRepo(db), caps, events)
	controllers := NewControllerService(repository.NewControllerRepo(db), ledgers, stores, caps, events)
	registries := NewRegistryService(repository.NewRegistryRepo(db), ledgers, events)

	return &fixture{
		caps:        caps,
		ledgers:     ledgers,
		stores:      stores,
		controllers: controllers,
		registries:  registries,
		events:      events,
	}
}

func callerCtx(account domain.Account) context.Context {
	return domain.WithCaller(context.Background(), account)
}
