package api

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts every custody resource on the given router. Authentication
// is applied by the caller so tests can mount the routes with a fixed
// caller identity instead.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/ledgers", h.ledgerRoutes)
	r.Route("/stores", h.storeRoutes)
	r.Route("/controllers", h.controllerRoutes)
	r.Route("/registries", h.registryRoutes)
	r.Get("/events", h.listEvents)
}
