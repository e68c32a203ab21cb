package router

import (
	"github.com/go-chi/chi/v5"

	"atrium/internal/handlers/auth"
	"atrium/internal/handlers/booking"
	"atrium/internal/handlers/branch"
	"atrium/internal/handlers/employee"
	"atrium/internal/handlers/health"
	"atrium/internal/handlers/prebooking"
	"atrium/internal/handlers/room"
	"atrium/internal/handlers/serviceusage"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Health       health.Handler
	Branch       branch.Handler
	Employee     employee.Handler
	Room         room.Handler
	PreBooking   prebooking.Handler
	Booking      booking.Handler
	ServiceUsage serviceusage.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Branch.Router(routerGroup)
		r.DomainHandlers.Employee.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.PreBooking.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.ServiceUsage.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
