package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"atrium/config"
	"atrium/infras/kafka"
	"atrium/infras/otel"
	"atrium/infras/postgres"
	bookingModel "atrium/internal/domains/booking/model"
	bookingRepo "atrium/internal/domains/booking/repository"
	branchModel "atrium/internal/domains/branch/model"
	branchRepo "atrium/internal/domains/branch/repository"
	guestModel "atrium/internal/domains/guest/model"
	guestRepo "atrium/internal/domains/guest/repository"
	"atrium/internal/domains/prebooking/model"
	"atrium/internal/domains/prebooking/model/dto"
	"atrium/internal/domains/prebooking/repository"
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
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

const (
	cacheGetPreBooking    = "pre_booking:get"
	cacheGetAllPreBooking = "pre_booking:gets"
	cacheCountPreBooking  = "pre_booking:count"

	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

// unconvertedClause keeps converted pre-bookings out of list and count reads. A
// pre-booking is converted the moment a booking row references it.
const unconvertedClause = "NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.pre_booking_id = pre_bookings.id)"

type PreBooking interface {
	Submit(ctx context.Context, req dto.SubmitPreBookingRequest) (dto.PreBookingResponse, error)
	Confirm(ctx context.Context, id string, req dto.ConfirmPreBookingRequest) (dto.ConfirmPreBookingResponse, error)
	Cancel(ctx context.Context, id string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPreBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PreBookingResponse, error)
}

type serviceImpl struct {
	repo         repository.PreBooking
	roomRepo     roomRepo.Room
	bookingRepo  bookingRepo.Booking
	guestRepo    guestRepo.Guest
	branchRepo   branchRepo.Branch
	roomTypeRepo roomTypeRepo.RoomType
	txRunner     postgres.TxRunner
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.PreBooking,
	roomRepo roomRepo.Room,
	bookingRepo bookingRepo.Booking,
	guestRepo guestRepo.Guest,
	branchRepo branchRepo.Branch,
	roomTypeRepo roomTypeRepo.RoomType,
	txRunner postgres.TxRunner,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) PreBooking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		guestRepo:    guestRepo,
		branchRepo:   branchRepo,
		roomTypeRepo: roomTypeRepo,
		txRunner:     txRunner,
		kafka:        kafka,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Submit assigns a concrete room to the request and records a tentative hold on
// it, all inside one transaction. The room row stays locked from the
// availability read until commit, so two concurrent submissions for the last
// room of a type cannot both succeed.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitPreBookingRequest) (res dto.PreBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitPreBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	stay, err := daterange.Parse(constant.DateOnlyFormat, req.ExpectedCheckIn, req.ExpectedCheckOut)
	if err != nil {
		if errors.Is(err, daterange.ErrCheckOutNotAfterCheckIn) {
			return res, failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
		}

		return res, failure.BadRequestFromString("expected dates must use the YYYY-MM-DD format") //nolint:wrapcheck
	}

	guestExists, err := s.guestRepo.Exist(ctx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if guest exists")

		return res, fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !guestExists {
		return res, failure.BadRequestFromString("guest does not exist") //nolint:wrapcheck
	}

	branchExists, err := s.branchRepo.Exist(ctx, shared.FilterByID(req.BranchID, branchModel.FieldID, branchModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if branch exists")

		return res, fmt.Errorf("failed to check if branch exists: %w", err)
	}

	if !branchExists {
		return res, failure.BadRequestFromString("branch does not exist") //nolint:wrapcheck
	}

	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(req.RoomTypeID, rtModel.FieldID, rtModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.BadRequestFromString("room type does not exist") //nolint:wrapcheck
	}

	var (
		preBooking model.PreBooking
		room       roomModel.Room
	)

	err = s.txRunner.WithinTx(ctx, func(tx *sqlx.Tx) error {
		room, err = s.roomRepo.FindAvailableTx(ctx, tx, req.RoomTypeID, req.BranchID, stay)
		if err != nil {
			return fmt.Errorf("failed to find available room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("no room of the requested type is available for these dates") //nolint:wrapcheck
		}

		if err := s.roomRepo.PlaceHoldTx(ctx, tx, room.ID, stay); err != nil {
			return fmt.Errorf("failed to place room hold: %w", err)
		}

		preBooking = req.ToModel(user, room.ID, stay)

		if err := s.repo.InsertTx(ctx, tx, preBooking); err != nil {
			return fmt.Errorf("failed to insert pre-booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(preBooking)
	res.RoomNumber = room.RoomNumber
	res.RoomType = roomType.Name

	s.afterWrite(ctx, constant.EventPreBookingAssigned, preBooking, constant.Empty)

	return res, nil
}

// Confirm converts a pre-booking into a confirmed booking. The pre-booking row
// is locked before the conversion check so that two concurrent confirmations of
// the same id serialize; the loser sees the winner's booking and fails.
// Occupancy and special requests from the request body override the values
// recorded at submission.
func (s *serviceImpl) Confirm(ctx context.Context, id string, req dto.ConfirmPreBookingRequest) (res dto.ConfirmPreBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmPreBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		preBooking model.PreBooking
		booking    bookingModel.Booking
	)

	err = s.txRunner.WithinTx(ctx, func(tx *sqlx.Tx) error {
		preBooking, err = s.repo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to lock pre-booking: %w", err)
		}

		if preBooking.ID == constant.Empty {
			return failure.NotFound("pre-booking not found") //nolint:wrapcheck
		}

		converted, err := s.bookingRepo.ExistsForPreBookingTx(ctx, tx, preBooking.ID)
		if err != nil {
			return fmt.Errorf("failed to check pre-booking conversion: %w", err)
		}

		if converted {
			return failure.BadRequestFromString("pre-booking has already been converted to a booking") //nolint:wrapcheck
		}

		roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(preBooking.RoomTypeID, rtModel.FieldID, rtModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get room type: %w", err)
		}

		numAdults := preBooking.NumAdults
		if req.NumAdults != nil {
			numAdults = *req.NumAdults
		}

		if numAdults == 0 {
			numAdults = preBooking.Capacity
		}

		numChildren := preBooking.NumChildren
		if req.NumChildren != nil {
			numChildren = *req.NumChildren
		}

		specialRequests := preBooking.SpecialRequests
		if req.SpecialRequests != nil {
			specialRequests = req.SpecialRequests
		}

		booking = bookingModel.Booking{
			ID:              uuid.NewString(),
			PreBookingID:    &preBooking.ID,
			GuestID:         preBooking.GuestID,
			RoomID:          preBooking.RoomID,
			CheckInDate:     preBooking.ExpectedCheckIn,
			CheckOutDate:    preBooking.ExpectedCheckOut,
			Status:          constant.BookingStatusConfirmed,
			NumAdults:       numAdults,
			NumChildren:     numChildren,
			SpecialRequests: specialRequests,
			BookedRate:      roomType.BaseRate,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}

		if err := s.bookingRepo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res = dto.ConfirmPreBookingResponse{
		BookingID:    booking.ID,
		PreBookingID: preBooking.ID,
		GuestID:      booking.GuestID,
		RoomID:       booking.RoomID,
		RoomNumber:   preBooking.RoomNumber,
		CheckInDate:  booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate: booking.CheckOutDate.Format(constant.DateOnlyFormat),
		Status:       booking.Status,
		NumAdults:    booking.NumAdults,
		NumChildren:  booking.NumChildren,
		BookedRate:   booking.BookedRate,
	}

	s.afterWrite(ctx, constant.EventPreBookingConfirmed, preBooking, booking.ID)

	return res, nil
}

// Cancel removes an unconverted pre-booking and releases the room hold it
// placed, but only when the hold still covers the pre-booking's own stay. A
// hold rewritten by a later pre-booking on the same room is left alone.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelPreBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	var preBooking model.PreBooking

	err = s.txRunner.WithinTx(ctx, func(tx *sqlx.Tx) error {
		preBooking, err = s.repo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to lock pre-booking: %w", err)
		}

		if preBooking.ID == constant.Empty {
			return failure.NotFound("pre-booking not found") //nolint:wrapcheck
		}

		converted, err := s.bookingRepo.ExistsForPreBookingTx(ctx, tx, preBooking.ID)
		if err != nil {
			return fmt.Errorf("failed to check pre-booking conversion: %w", err)
		}

		if converted {
			return failure.BadRequestFromString("pre-booking has already been converted to a booking") //nolint:wrapcheck
		}

		stay := daterange.Range{Start: preBooking.ExpectedCheckIn, End: preBooking.ExpectedCheckOut}

		if err := s.roomRepo.ReleaseHoldIfOverlapsTx(ctx, tx, preBooking.RoomID, stay); err != nil {
			return fmt.Errorf("failed to release room hold: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(preBooking.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to delete pre-booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	s.afterWrite(ctx, constant.EventPreBookingCancelled, preBooking, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPreBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllPreBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	augmented := unconvertedOnly(filter)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPreBooking, req, augmented)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pre-bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pre-bookings")

		return res, fmt.Errorf("failed to count pre-bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, augmented)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pre-bookings")

		return res, fmt.Errorf("failed to get pre-bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pre-bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountPreBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = unconvertedOnly(filter)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPreBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pre-booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pre-bookings")

		return res, fmt.Errorf("failed to count pre-bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pre-booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PreBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPreBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPreBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pre-booking")

		return res, nil
	}

	preBooking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pre-booking")

		return res, fmt.Errorf("failed to get pre-booking: %w", err)
	}

	if preBooking.ID == constant.Empty {
		return res, failure.NotFound("pre-booking not found") //nolint:wrapcheck
	}

	res.FromModel(preBooking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pre-booking to cache")
		}
	}()

	return res, nil
}

// afterWrite invalidates the read caches touched by a pre-booking mutation and
// publishes the corresponding event. Both are best-effort and run off the
// request path.
func (s *serviceImpl) afterWrite(ctx context.Context, event string, preBooking model.PreBooking, bookingID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPreBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountPreBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetPreBooking)

		if bookingID != constant.Empty {
			shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
			shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		}

		message := kafka.Message{
			Key: preBooking.ID,
			Value: dto.PreBookingEvent{
				Event:        event,
				PreBookingID: preBooking.ID,
				BookingID:    bookingID,
				GuestID:      preBooking.GuestID,
				BranchID:     preBooking.BranchID,
				RoomID:       preBooking.RoomID,
				CheckIn:      preBooking.ExpectedCheckIn.Format(constant.DateOnlyFormat),
				CheckOut:     preBooking.ExpectedCheckOut.Format(constant.DateOnlyFormat),
			},
		}

		if err := s.kafka.SendMessages(c, constant.TopicPreBookings, message); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish pre-booking event")
		}
	}()
}

func unconvertedOnly(filter gDto.FilterGroup) gDto.FilterGroup {
	filter.Filters = append(filter.Filters, gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    unconvertedClause,
	})

	if filter.Operator == constant.Empty {
		filter.Operator = gDto.FilterGroupOperatorAnd
	}

	return filter
}
