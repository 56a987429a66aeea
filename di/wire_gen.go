// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"bookable/config"
	"bookable/infras/jwt"
	"bookable/infras/kafka"
	"bookable/infras/otel"
	"bookable/infras/postgres"
	"bookable/infras/redis"
	"bookable/infras/s3"
	repository2 "bookable/internal/domains/media/repository"
	"bookable/internal/domains/media/service"
	service3 "bookable/internal/domains/pricing/service"
	"bookable/internal/domains/service/manager"
	"bookable/internal/domains/service/migration"
	"bookable/internal/domains/service/repository"
	"bookable/internal/handlers/media"
	"bookable/internal/handlers/pricing"
	service2 "bookable/internal/handlers/service"
	"bookable/shared/cache"
	"bookable/transport/http"
	"bookable/transport/http/middleware"
	"bookable/transport/http/router"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	record := repository.NewRecord(connection, otelOtel)
	meta := repository.NewMeta(connection, otelOtel)
	schedule := repository.NewSchedule(connection, otelOtel)
	rule := repository.NewRule(connection, otelOtel)
	repositoryMedia := repository2.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceMedia := service.New(repositoryMedia, configConfig, redisCache, otelOtel, s3S3)
	imageResolver := ProvideImageResolver(serviceMedia)
	kafkaClient := kafka.New(configConfig)
	managerManager := manager.New(record, meta, schedule, rule, connection, imageResolver, configConfig, redisCache, otelOtel, kafkaClient)
	jwtJWT := jwt.New(configConfig)
	auth := middleware.NewAuthMiddleware(jwtJWT, otelOtel)
	handler := service2.New(managerManager, auth, configConfig, otelOtel)
	servicePricing := service3.New(managerManager, otelOtel)
	pricingHandler := pricing.New(servicePricing, otelOtel)
	mediaHandler := media.New(serviceMedia, auth, otelOtel)
	domainHandlers := router.DomainHandlers{
		Service: handler,
		Pricing: pricingHandler,
		Media:   mediaHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware)
	return httpHTTP
}

func InitializeMigrator() migration.Migrator {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	meta := repository.NewMeta(connection, otelOtel)
	migrator := migration.New(meta, configConfig, otelOtel)
	return migrator
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, wire.Bind(new(postgres.Transactor), new(*postgres.Connection)), otel.New, redis.New, jwt.New, kafka.New, s3.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var serviceDomain = wire.NewSet(repository.NewRecord, repository.NewMeta, repository.NewSchedule, repository.NewRule, manager.New)

var mediaDomain = wire.NewSet(repository2.New, service.New, ProvideImageResolver)

var pricingDomain = wire.NewSet(service3.New)

var domains = wire.NewSet(
	serviceDomain,
	mediaDomain,
	pricingDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), service2.New, pricing.New, media.New, router.New)
