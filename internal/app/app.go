// Package app provides application-level wiring and dependency injection
// for the custody server following hexagonal architecture.
package app

import (
	"database/sql"
	"log/slog"

	"proxymint/internal/config"
	"proxymint/internal/db/repository"
	"proxymint/internal/service"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups all service pointers the API handler needs.
type Services struct {
	Capability   *service.CapabilityService
	Ledger       *service.LedgerService
	RequestStore *service.RequestStoreService
	Controller   *service.ControllerService
	Registry     *service.RegistryService
	Event        *service.EventService
}

// App holds the fully-wired application.
type App struct {
	Services Services
}

// New wires all repositories and services from the provided deps.
func New(deps Deps) *App {
	// Repositories that mutate go on the write pool; the event read path
	// uses the read pool.
	events := repository.NewEventRepo(deps.WriteDB)
	eventsRead := repository.NewEventRepo(deps.ReadDB)

	caps := service.NewCapabilityService(repository.NewCapabilityRepo(deps.WriteDB), events)
	ledgers := service.NewLedgerService(repository.NewLedgerRepo(deps.WriteDB), caps, events)
	stores := service.NewRequestStoreService(repository.NewRequestRepo(deps.WriteDB), caps, events)
	controllers := service.NewControllerService(repository.NewControllerRepo(deps.WriteDB), ledgers, stores, caps, events)
	registries := service.NewRegistryService(repository.NewRegistryRepo(deps.WriteDB), ledgers, events)

	return &App{
		Services: Services{
			Capability:   caps,
			Ledger:       ledgers,
			RequestStore: stores,
			Controller:   controllers,
			Registry:     registries,
			Event:        service.NewEventService(eventsRead),
		},
	}
}
