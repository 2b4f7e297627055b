package router

import (
	"net/http"

	"tablebook/internal/handlers/reservation"
	"tablebook/internal/handlers/table"
	"tablebook/shared/failure"
	"tablebook/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Reservation reservation.Handler
	Table       table.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, failure.MethodNotAllowed)
	})

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
