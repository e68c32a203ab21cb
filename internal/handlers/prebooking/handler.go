package prebooking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"atrium/infras/otel"
	"atrium/internal/domains/prebooking/model"
	"atrium/internal/domains/prebooking/model/dto"
	"atrium/internal/domains/prebooking/service"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/validator"
	"atrium/transport/http/response"
)

type Handler struct {
	service service.PreBooking
	otel    otel.Otel
}

func New(service service.PreBooking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/pre-bookings", func(r chi.Router) {
		r.Post("/", handler.SubmitPreBooking)
		r.Get("/", handler.GetPreBookings)
		r.Get("/{id}", handler.GetPreBookingByID)
		r.Post("/{id}/confirm", handler.ConfirmPreBooking)
		r.Delete("/{id}", handler.CancelPreBooking)
	})
}

// SubmitPreBooking submits a pre-booking and assigns a room in one transaction.
// @Summary Submit a pre-booking
// @Description Assign the lowest-numbered free room of the requested type and place a tentative hold on it.
// @Tags PreBooking
// @Accept json
// @Produce json
// @Param request body dto.SubmitPreBookingRequest true "Pre-booking Request"
// @Success 200 {object} response.Data[dto.PreBookingResponse] "Pre-booking created with assigned room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "No room of the requested type is free for the interval"
// @Failure 500 {object} response.Error
// @Router /v1/pre-bookings [post]
// @Security BearerAuth
func (handler *Handler) SubmitPreBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitPreBooking")
	defer scope.End()

	req := dto.SubmitPreBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit pre-booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pre-booking submitted successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// GetPreBookings retrieves unconverted pre-bookings.
// @Summary Get all pre-bookings
// @Description Retrieve pre-bookings not yet converted to bookings, with optional branch filter.
// @Tags PreBooking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param branch_id query string false "Filter by branch"
// @Success 200 {object} response.Data[dto.GetPreBookingsResponse] "List of pre-bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pre-bookings [get]
// @Security BearerAuth
func (handler *Handler) GetPreBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPreBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBranchID,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldBranchID),
				Table:    model.TableName,
			},
		},
	}

	preBookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pre-bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pre-bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, preBookings)
}

// GetPreBookingByID retrieves a pre-booking by its ID.
// @Summary Get a pre-booking by ID
// @Description Retrieve a pre-booking with guest and room details.
// @Tags PreBooking
// @Accept json
// @Produce json
// @Param id path string true "Pre-booking ID"
// @Success 200 {object} response.Data[dto.PreBookingResponse] "Pre-booking details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pre-bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPreBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPreBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	preBooking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pre-booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pre-booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, preBooking)
}

// ConfirmPreBooking converts a pre-booking into a confirmed booking.
// @Summary Confirm a pre-booking
// @Description Lock the pre-booking row and insert a Confirmed booking copying its guest, room and dates.
// @Tags PreBooking
// @Accept json
// @Produce json
// @Param id path string true "Pre-booking ID"
// @Param request body dto.ConfirmPreBookingRequest false "Optional confirm-time overrides"
// @Success 200 {object} response.Data[dto.ConfirmPreBookingResponse] "Booking created from pre-booking"
// @Failure 400 {object} response.Error "Pre-booking already converted"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pre-bookings/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmPreBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmPreBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ConfirmPreBookingRequest{}

	// the override body is optional; an empty body keeps the submitted values
	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	res, err := handler.service.Confirm(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm pre-booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pre-booking confirmed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// CancelPreBooking cancels an unconverted pre-booking and releases its hold.
// @Summary Cancel a pre-booking
// @Description Delete an unconverted pre-booking and release the tentative hold on its room.
// @Tags PreBooking
// @Accept json
// @Produce json
// @Param id path string true "Pre-booking ID"
// @Success 200 {object} response.Message "Pre-booking cancelled successfully"
// @Failure 400 {object} response.Error "Pre-booking already converted"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pre-bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelPreBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelPreBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel pre-booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pre-booking cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Pre-booking cancelled successfully")
}
