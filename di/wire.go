//go:build wireinject
// +build wireinject

package di

import (
	"bookable/config"
	"bookable/infras/jwt"
	"bookable/infras/kafka"
	"bookable/infras/otel"
	"bookable/infras/postgres"
	"bookable/infras/redis"
	"bookable/infras/s3"
	"bookable/shared/cache"
	"bookable/transport/http"
	"bookable/transport/http/middleware"
	"bookable/transport/http/router"

	mediaHandler "bookable/internal/handlers/media"
	pricingHandler "bookable/internal/handlers/pricing"
	serviceHandler "bookable/internal/handlers/service"

	mediaRepository "bookable/internal/domains/media/repository"
	mediaService "bookable/internal/domains/media/service"
	pricingService "bookable/internal/domains/pricing/service"
	serviceManager "bookable/internal/domains/service/manager"
	serviceMigration "bookable/internal/domains/service/migration"
	serviceRepository "bookable/internal/domains/service/repository"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var serviceDomain = wire.NewSet(
	serviceRepository.NewRecord,
	serviceRepository.NewMeta,
	serviceRepository.NewSchedule,
	serviceRepository.NewRule,
	serviceManager.New,
)

var mediaDomain = wire.NewSet(
	mediaRepository.New,
	mediaService.New,
	ProvideImageResolver,
)

var pricingDomain = wire.NewSet(
	pricingService.New,
)

var domains = wire.NewSet(
	serviceDomain,
	mediaDomain,
	pricingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	serviceHandler.New,
	pricingHandler.New,
	mediaHandler.New,
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

func InitializeMigrator() serviceMigration.Migrator {
	wire.Build(
		configurations,
		wire.NewSet(postgres.New, otel.New),
		serviceRepository.NewMeta,
		serviceMigration.New,
	)

	return nil
}
