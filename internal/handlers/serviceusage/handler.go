package serviceusage

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"atrium/infras/otel"
	"atrium/internal/domains/serviceusage/model"
	"atrium/internal/domains/serviceusage/model/dto"
	"atrium/internal/domains/serviceusage/service"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/validator"
	"atrium/transport/http/response"
)

const (
	queryUsedFrom = "used_from"
	queryUsedTo   = "used_to"
)

type Handler struct {
	service service.ServiceUsage
	otel    otel.Otel
}

func New(service service.ServiceUsage, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/service-usages", func(r chi.Router) {
		r.Post("/", handler.CreateServiceUsage)
		r.Get("/", handler.GetServiceUsages)
		r.Get("/{id}", handler.GetServiceUsageByID)
	})

	r.Route("/services", func(r chi.Router) {
		r.Get("/", handler.GetServices)
	})
}

// CreateServiceUsage records a chargeable service against a booking.
// @Summary Record a service usage
// @Description Record usage of a catalog service for a booking, snapshotting the current unit price.
// @Tags ServiceUsage
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceUsageRequest true "Service Usage Request"
// @Success 201 {object} response.Data[dto.ServiceUsageResponse] "Service usage recorded"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-usages [post]
// @Security BearerAuth
func (handler *Handler) CreateServiceUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateServiceUsage")
	defer scope.End()

	req := dto.CreateServiceUsageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service usage")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service usage recorded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetServiceUsages retrieves service usages based on query parameters.
// @Summary Get all service usages
// @Description Retrieve service usages with optional booking and usage date range filters.
// @Tags ServiceUsage
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking"
// @Param used_from query string false "Usage date lower bound (YYYY-MM-DD)"
// @Param used_to query string false "Usage date upper bound (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetServiceUsagesResponse] "List of service usages"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-usages [get]
// @Security BearerAuth
func (handler *Handler) GetServiceUsages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceUsages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldBookingID),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldUsedOn,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    r.URL.Query().Get(queryUsedFrom),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldUsedOn,
				Operator: gDto.FilterOperatorLessEq,
				Value:    r.URL.Query().Get(queryUsedTo),
				Table:    model.TableName,
			},
		},
	}

	usages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service usages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service usages retrieved successfully")

	response.WithJSON(w, http.StatusOK, usages)
}

// GetServiceUsageByID retrieves a service usage by its ID.
// @Summary Get a service usage by ID
// @Description Retrieve a service usage with its service name and charged amount.
// @Tags ServiceUsage
// @Accept json
// @Produce json
// @Param id path string true "Service Usage ID"
// @Success 200 {object} response.Data[dto.ServiceUsageResponse] "Service usage details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/service-usages/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetServiceUsageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceUsageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	usage, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service usage by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service usage retrieved successfully")

	response.WithJSON(w, http.StatusOK, usage)
}

// GetServices retrieves the active service catalog.
// @Summary Get the service catalog
// @Description Retrieve all active services with their current unit prices.
// @Tags ServiceUsage
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetServicesResponse] "List of services"
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
// @Security BearerAuth
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	services, err := handler.service.GetServices(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Services retrieved successfully")

	response.WithJSON(w, http.StatusOK, services)
}
