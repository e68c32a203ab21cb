package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"atrium/config"
	"atrium/infras/otel"
	bookingModel "atrium/internal/domains/booking/model"
	bookingRepo "atrium/internal/domains/booking/repository"
	catalogModel "atrium/internal/domains/servicecatalog/model"
	catalogRepo "atrium/internal/domains/servicecatalog/repository"
	"atrium/internal/domains/serviceusage/model"
	"atrium/internal/domains/serviceusage/model/dto"
	"atrium/internal/domains/serviceusage/repository"
	"atrium/shared"
	"atrium/shared/cache"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	"atrium/shared/timezone"
)

const (
	cacheGetServiceUsage    = "service_usage:get"
	cacheGetAllServiceUsage = "service_usage:gets"
	cacheCountServiceUsage  = "service_usage:count"
	cacheGetServices        = "service_catalog:gets"
)

type ServiceUsage interface {
	Create(ctx context.Context, req dto.CreateServiceUsageRequest) (dto.ServiceUsageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServiceUsagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ServiceUsageResponse, error)
	GetServices(ctx context.Context) (dto.GetServicesResponse, error)
}

type serviceImpl struct {
	repo        repository.ServiceUsage
	catalogRepo catalogRepo.ServiceCatalog
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.ServiceUsage,
	catalogRepo catalogRepo.ServiceCatalog,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) ServiceUsage {
	return &serviceImpl{
		repo:        repo,
		catalogRepo: catalogRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Create charges a catalog service to a booking, snapshotting the unit price at
// the time of use.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceUsageRequest) (res dto.ServiceUsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateServiceUsage")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	usedOn := timezone.Now()
	if req.UsedOn != constant.Empty {
		usedOn, err = time.Parse(constant.DateOnlyFormat, req.UsedOn)
		if err != nil {
			return res, failure.BadRequestFromString("used_on must use the YYYY-MM-DD format") //nolint:wrapcheck
		}
	}

	bookingExists, err := s.bookingRepo.Exist(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return res, fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !bookingExists {
		return res, failure.BadRequestFromString("booking does not exist") //nolint:wrapcheck
	}

	catalogService, err := s.catalogRepo.Get(ctx, shared.FilterByID(req.ServiceID, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if catalogService.ID == constant.Empty {
		return res, failure.BadRequestFromString("service does not exist") //nolint:wrapcheck
	}

	if !catalogService.Active {
		return res, failure.BadRequestFromString("service is no longer offered") //nolint:wrapcheck
	}

	usage := req.ToModel(user, usedOn, catalogService.UnitPrice)

	if err = s.repo.Insert(ctx, usage); err != nil {
		return res, err //nolint:wrapcheck
	}

	usage.ServiceName = catalogService.Name
	res.FromModel(usage)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllServiceUsage)
		shared.InvalidateCaches(c, s.cache, cacheCountServiceUsage)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServiceUsagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllServiceUsages")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllServiceUsage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service usages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count service usages")

		return res, fmt.Errorf("failed to count service usages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service usages")

		return res, fmt.Errorf("failed to get service usages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service usages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountServiceUsages")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountServiceUsage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service usage count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count service usages")

		return res, fmt.Errorf("failed to count service usages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service usage count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceUsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetServiceUsage")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetServiceUsage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service usage")

		return res, nil
	}

	usage, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service usage")

		return res, fmt.Errorf("failed to get service usage: %w", err)
	}

	if usage.ID == constant.Empty {
		return res, failure.NotFound("service usage not found") //nolint:wrapcheck
	}

	res.FromModel(usage)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service usage to cache")
		}
	}()

	return res, nil
}

// GetServices lists the active service catalog.
func (s *serviceImpl) GetServices(ctx context.Context) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetServices")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetServices, "active")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service catalog")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    catalogModel.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    catalogModel.TableName,
			},
		},
	}

	models, err := s.catalogRepo.GetAll(ctx, gDto.QueryParams{SortBy: catalogModel.FieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service catalog")

		return res, fmt.Errorf("failed to get service catalog: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service catalog to cache")
		}
	}()

	return res, nil
}
