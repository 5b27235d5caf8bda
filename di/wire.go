//go:build wireinject
// +build wireinject

package di

import (
	"nutrisur/config"
	"nutrisur/infras/jwt"
	"nutrisur/infras/kafka"
	"nutrisur/infras/llm"
	"nutrisur/infras/otel"
	"nutrisur/infras/postgres"
	"nutrisur/infras/redis"
	"nutrisur/infras/s3"
	"nutrisur/permissions"
	"nutrisur/shared/cache"
	"nutrisur/shared/clock"
	"nutrisur/transport/http"
	"nutrisur/transport/http/middleware"
	"nutrisur/transport/http/router"

	appointmentRepository "nutrisur/internal/domains/appointment/repository"
	appointmentService "nutrisur/internal/domains/appointment/service"
	assistantService "nutrisur/internal/domains/assistant/service"
	authService "nutrisur/internal/domains/auth/service"
	dialogueService "nutrisur/internal/domains/dialogue/service"
	notificationService "nutrisur/internal/domains/notification/service"
	orderRepository "nutrisur/internal/domains/order/repository"
	orderService "nutrisur/internal/domains/order/service"
	productRepository "nutrisur/internal/domains/product/repository"
	productService "nutrisur/internal/domains/product/service"
	userRepository "nutrisur/internal/domains/user/repository"
	userService "nutrisur/internal/domains/user/service"

	appointmentHandler "nutrisur/internal/handlers/appointment"
	authHandler "nutrisur/internal/handlers/auth"
	healthHandler "nutrisur/internal/handlers/health"
	orderHandler "nutrisur/internal/handlers/order"
	productHandler "nutrisur/internal/handlers/product"
	userHandler "nutrisur/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	llm.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
	provideDateParser,
	provideBookingSessions,
	provideAssistedSessions,
	provideOrderChatHistory,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

var productDomain = wire.NewSet(
	productRepository.New,
	productService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
	assistantService.New,
	dialogueService.NewBooking,
	dialogueService.NewAssisted,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderService.New,
	orderService.NewChat,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	notificationDomain,
	productDomain,
	appointmentDomain,
	orderDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	userHandler.New,
	productHandler.New,
	appointmentHandler.New,
	orderHandler.New,
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

func InitializeNotifier() Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		cache.NewRedisCache,
		clock.New,
		userDomain,
		notificationService.NewLogSink,
		notificationService.NewNotifier,
		wire.Struct(new(Worker), "*"),
	)

	return Worker{}
}
