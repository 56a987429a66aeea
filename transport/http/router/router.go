package router

import (
	"bookable/internal/handlers/media"
	"bookable/internal/handlers/pricing"
	"bookable/internal/handlers/service"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Service service.Handler
	Pricing pricing.Handler
	Media   media.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Service.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Media.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
