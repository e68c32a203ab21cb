package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"atrium/config"
	"atrium/infras/kafka"
	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/booking/model"
	"atrium/internal/domains/booking/model/dto"
	"atrium/internal/domains/booking/repository"
	guestModel "atrium/internal/domains/guest/model"
	guestRepo "atrium/internal/domains/guest/repository"
	roomModel "atrium/internal/domains/room/model"
	roomRepo "atrium/internal/domains/room/repository"
	rtModel "atrium/internal/domains/roomtype/model"
	roomTypeRepo "atrium/internal/domains/roomtype/repository"
	"atrium/shared"
	"atrium/shared/cache"
	"atrium/shared/constant"
	"atrium/shared/daterange"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

// allowedTransitions is the booking lifecycle. Checked-Out and Cancelled are
// terminal.
var allowedTransitions = map[string][]string{
	constant.BookingStatusConfirmed: {constant.BookingStatusCheckedIn, constant.BookingStatusCancelled},
	constant.BookingStatusCheckedIn: {constant.BookingStatusCheckedOut, constant.BookingStatusCancelled},
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	guestRepo    guestRepo.Guest
	roomTypeRepo roomTypeRepo.RoomType
	txRunner     postgres.TxRunner
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	roomTypeRepo roomTypeRepo.RoomType,
	txRunner postgres.TxRunner,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		guestRepo:    guestRepo,
		roomTypeRepo: roomTypeRepo,
		txRunner:     txRunner,
		kafka:        kafka,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create records a direct booking for a staff-selected room. It deliberately
// skips the availability index; the desk owns the conflict call here.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	stay, err := daterange.Parse(constant.DateOnlyFormat, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		if errors.Is(err, daterange.ErrCheckOutNotAfterCheckIn) {
			return res, failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
		}

		return res, failure.BadRequestFromString("booking dates must use the YYYY-MM-DD format") //nolint:wrapcheck
	}

	guestExists, err := s.guestRepo.Exist(ctx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if guest exists")

		return res, fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !guestExists {
		return res, failure.BadRequestFromString("guest does not exist") //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.BadRequestFromString("room does not exist") //nolint:wrapcheck
	}

	rate := req.BookedRate
	if rate == 0 {
		roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(room.RoomTypeID, rtModel.FieldID, rtModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room type")

			return res, fmt.Errorf("failed to get room type: %w", err)
		}

		rate = roomType.BaseRate
	}

	booking := req.ToModel(user, stay, rate)

	if err = s.repo.Insert(ctx, booking); err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(booking)

	s.afterWrite(ctx, constant.EventBookingCreated, booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// UpdateStatus moves a booking along its lifecycle. Cancelling a booking that
// was converted from a pre-booking also releases the room hold, but only when
// the hold still covers the cancelled stay.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBookingStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if !transitionAllowed(booking.Status, req.Status) {
		return res, failure.BadRequestFromString(
			fmt.Sprintf("cannot move booking from %s to %s", booking.Status, req.Status),
		) //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	statusFilter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)

	releaseHold := req.Status == constant.BookingStatusCancelled && booking.PreBookingID != nil
	if releaseHold {
		stay := daterange.Range{Start: booking.CheckInDate, End: booking.CheckOutDate}

		err = s.txRunner.WithinTx(ctx, func(tx *sqlx.Tx) error {
			if err := s.repo.UpdateTx(ctx, tx, updatedFields, statusFilter); err != nil {
				return fmt.Errorf("failed to update booking status: %w", err)
			}

			if err := s.roomRepo.ReleaseHoldIfOverlapsTx(ctx, tx, booking.RoomID, stay); err != nil {
				return fmt.Errorf("failed to release room hold: %w", err)
			}

			return nil
		})
	} else {
		err = s.repo.Update(ctx, updatedFields, statusFilter)
	}

	if err != nil {
		return res, err //nolint:wrapcheck
	}

	booking.Status = req.Status
	res.FromModel(booking)

	s.afterWrite(ctx, constant.EventBookingStatusMoved, booking)

	return res, nil
}

// afterWrite invalidates booking read caches and publishes the lifecycle event,
// both off the request path.
func (s *serviceImpl) afterWrite(ctx context.Context, event string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetBooking)

		message := kafka.Message{
			Key: booking.ID,
			Value: dto.BookingEvent{
				Event:        event,
				BookingID:    booking.ID,
				PreBookingID: booking.PreBookingID,
				GuestID:      booking.GuestID,
				RoomID:       booking.RoomID,
				Status:       booking.Status,
				CheckIn:      booking.CheckInDate.Format(constant.DateOnlyFormat),
				CheckOut:     booking.CheckOutDate.Format(constant.DateOnlyFormat),
			},
		}

		if err := s.kafka.SendMessages(c, constant.TopicBookings, message); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}
