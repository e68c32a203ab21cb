//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"atrium/config"
	"atrium/infras/jwt"
	"atrium/infras/kafka"
	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/infras/redis"
	"atrium/infras/s3"
	"atrium/permissions"
	"atrium/shared/cache"
	"atrium/transport/http"
	"atrium/transport/http/middleware"
	"atrium/transport/http/router"

	authService "atrium/internal/domains/auth/service"
	bookingRepository "atrium/internal/domains/booking/repository"
	bookingService "atrium/internal/domains/booking/service"
	branchRepository "atrium/internal/domains/branch/repository"
	branchService "atrium/internal/domains/branch/service"
	employeeRepository "atrium/internal/domains/employee/repository"
	employeeService "atrium/internal/domains/employee/service"
	guestRepository "atrium/internal/domains/guest/repository"
	preBookingRepository "atrium/internal/domains/prebooking/repository"
	preBookingService "atrium/internal/domains/prebooking/service"
	roomRepository "atrium/internal/domains/room/repository"
	roomService "atrium/internal/domains/room/service"
	roomTypeRepository "atrium/internal/domains/roomtype/repository"
	serviceCatalogRepository "atrium/internal/domains/servicecatalog/repository"
	serviceUsageRepository "atrium/internal/domains/serviceusage/repository"
	serviceUsageService "atrium/internal/domains/serviceusage/service"
	userRepository "atrium/internal/domains/user/repository"

	authHandler "atrium/internal/handlers/auth"
	bookingHandler "atrium/internal/handlers/booking"
	branchHandler "atrium/internal/handlers/branch"
	employeeHandler "atrium/internal/handlers/employee"
	healthHandler "atrium/internal/handlers/health"
	preBookingHandler "atrium/internal/handlers/prebooking"
	roomHandler "atrium/internal/handlers/room"
	serviceUsageHandler "atrium/internal/handlers/serviceusage"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTxRunner,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var branchDomain = wire.NewSet(
	branchRepository.New,
	branchService.New,
)

var employeeDomain = wire.NewSet(
	employeeRepository.New,
	employeeService.New,
)

var roomDomain = wire.NewSet(
	roomTypeRepository.New,
	roomRepository.New,
	roomService.New,
)

var preBookingDomain = wire.NewSet(
	guestRepository.New,
	preBookingRepository.New,
	preBookingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var serviceUsageDomain = wire.NewSet(
	serviceCatalogRepository.New,
	serviceUsageRepository.New,
	serviceUsageService.New,
)

var domains = wire.NewSet(
	authDomain,
	branchDomain,
	employeeDomain,
	roomDomain,
	preBookingDomain,
	bookingDomain,
	serviceUsageDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	healthHandler.New,
	branchHandler.New,
	employeeHandler.New,
	roomHandler.New,
	preBookingHandler.New,
	bookingHandler.New,
	serviceUsageHandler.New,
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
