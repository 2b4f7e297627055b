//go:build wireinject
// +build wireinject

package di

import (
	"tablebook/config"
	"tablebook/infras/kafka"
	"tablebook/infras/otel"
	"tablebook/infras/postgres"
	"tablebook/infras/redis"
	"tablebook/shared/cache"
	"tablebook/transport/http"
	"tablebook/transport/http/middleware"
	"tablebook/transport/http/router"

	reservationEvents "tablebook/internal/domains/reservation/events"
	reservationRepository "tablebook/internal/domains/reservation/repository"
	reservationService "tablebook/internal/domains/reservation/service"
	tableRepository "tablebook/internal/domains/table/repository"
	tableService "tablebook/internal/domains/table/service"

	reservationHandler "tablebook/internal/handlers/reservation"
	tableHandler "tablebook/internal/handlers/table"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationEvents.New,
	reservationService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var domains = wire.NewSet(
	reservationDomain,
	tableDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	reservationHandler.New,
	tableHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
