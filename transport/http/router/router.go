package router

import (
	"nutrisur/config"
	_ "nutrisur/docs" // registers swagger docs
	"nutrisur/internal/handlers/appointment"
	"nutrisur/internal/handlers/auth"
	"nutrisur/internal/handlers/health"
	"nutrisur/internal/handlers/order"
	"nutrisur/internal/handlers/product"
	"nutrisur/internal/handlers/user"
	"nutrisur/shared/constant"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health      health.Handler
	Auth        auth.Handler
	User        user.Handler
	Product     product.Handler
	Appointment appointment.Handler
	Order       order.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	if r.Config.Server.Env != constant.ServerEnvProduction {
		router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Product.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Order.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Config:         cfg,
	}
}
