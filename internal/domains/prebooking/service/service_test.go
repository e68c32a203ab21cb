package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atrium/config"
	kafkaMocks "atrium/infras/kafka/mocks"
	otelMocks "atrium/infras/otel/mocks"
	txMocks "atrium/infras/postgres/mocks"
	bookingMocks "atrium/internal/domains/booking/mocks"
	bookingModel "atrium/internal/domains/booking/model"
	branchMocks "atrium/internal/domains/branch/mocks"
	guestMocks "atrium/internal/domains/guest/mocks"
	prebookingMocks "atrium/internal/domains/prebooking/mocks"
	"atrium/internal/domains/prebooking/model"
	"atrium/internal/domains/prebooking/model/dto"
	"atrium/internal/domains/prebooking/service"
	roomMocks "atrium/internal/domains/room/mocks"
	roomModel "atrium/internal/domains/room/model"
	roomTypeMocks "atrium/internal/domains/roomtype/mocks"
	rtModel "atrium/internal/domains/roomtype/model"
	cacheMocks "atrium/shared/cache/mocks"
	"atrium/shared/constant"
	"atrium/shared/daterange"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type preBookingMocks struct {
	repo         *prebookingMocks.MockPreBooking
	roomRepo     *roomMocks.MockRoom
	bookingRepo  *bookingMocks.MockBooking
	guestRepo    *guestMocks.MockGuest
	branchRepo   *branchMocks.MockBranch
	roomTypeRepo *roomTypeMocks.MockRoomType
	txRunner     *txMocks.MockTxRunner
	cache        *cacheMocks.MockRedisCache
}

func newPreBookingService(ctrl *gomock.Controller) (service.PreBooking, preBookingMocks) {
	m := preBookingMocks{
		repo:         prebookingMocks.NewMockPreBooking(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		guestRepo:    guestMocks.NewMockGuest(ctrl),
		branchRepo:   branchMocks.NewMockBranch(ctrl),
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		txRunner:     txMocks.NewMockTxRunner(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	mockKafka := kafkaMocks.NewMockClient(ctrl)

	// mutations invalidate caches and publish events off the request path
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(
		m.repo,
		m.roomRepo,
		m.bookingRepo,
		m.guestRepo,
		m.branchRepo,
		m.roomTypeRepo,
		m.txRunner,
		mockKafka,
		&config.Config{},
		m.cache,
		otelMocks.NewOtel(),
	)

	return svc, m
}

func runTx(ctx any, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func intPtr(v int) *int {
	return &v
}

func TestPreBookingService_Submit(t *testing.T) {
	validReq := dto.SubmitPreBookingRequest{
		GuestID:          "guest-1",
		BranchID:         "branch-1",
		RoomTypeID:       "type-1",
		Capacity:         2,
		Method:           constant.PreBookingMethodOnline,
		ExpectedCheckIn:  "2026-09-10",
		ExpectedCheckOut: "2026-09-14",
	}

	availableRoom := roomModel.Room{
		ID:         "room-1",
		BranchID:   "branch-1",
		RoomTypeID: "type-1",
		RoomNumber: "101",
		Status:     constant.RoomStatusAvailable,
	}

	tests := []struct {
		name      string
		req       dto.SubmitPreBookingRequest
		setupMock func(m preBookingMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "assigns lowest room and records the pre-booking",
			req:  validReq,
			setupMock: func(m preBookingMocks) {
				m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.branchRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rtModel.RoomType{ID: "type-1", Name: "Deluxe", Capacity: 2, BaseRate: 150}, nil)

				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.roomRepo.EXPECT().
					FindAvailableTx(gomock.Any(), gomock.Any(), "type-1", "branch-1", gomock.Any()).
					Return(availableRoom, nil)
				m.roomRepo.EXPECT().
					PlaceHoldTx(gomock.Any(), gomock.Any(), "room-1", gomock.Any()).
					Return(nil)
				m.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, pb model.PreBooking) error {
						assert.Equal(t, "room-1", pb.RoomID)
						assert.Equal(t, "guest-1", pb.GuestID)

						return nil
					})
			},
		},
		{
			name: "check-out equal to check-in is rejected before any write",
			req: dto.SubmitPreBookingRequest{
				GuestID:          "guest-1",
				BranchID:         "branch-1",
				RoomTypeID:       "type-1",
				Capacity:         2,
				Method:           constant.PreBookingMethodOnline,
				ExpectedCheckIn:  "2026-09-10",
				ExpectedCheckOut: "2026-09-10",
			},
			setupMock: func(m preBookingMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "malformed date is rejected before any write",
			req: dto.SubmitPreBookingRequest{
				GuestID:          "guest-1",
				BranchID:         "branch-1",
				RoomTypeID:       "type-1",
				Capacity:         2,
				Method:           constant.PreBookingMethodOnline,
				ExpectedCheckIn:  "10-09-2026",
				ExpectedCheckOut: "2026-09-14",
			},
			setupMock: func(m preBookingMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown guest",
			req:  validReq,
			setupMock: func(m preBookingMocks) {
				m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "no room available rolls the transaction back",
			req:  validReq,
			setupMock: func(m preBookingMocks) {
				m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.branchRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rtModel.RoomType{ID: "type-1", Name: "Deluxe", Capacity: 2, BaseRate: 150}, nil)

				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				// zero room means nothing matched; no hold, no insert
				m.roomRepo.EXPECT().
					FindAvailableTx(gomock.Any(), gomock.Any(), "type-1", "branch-1", gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "availability query failure surfaces as an error",
			req:  validReq,
			setupMock: func(m preBookingMocks) {
				m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.branchRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rtModel.RoomType{ID: "type-1", Name: "Deluxe", Capacity: 2, BaseRate: 150}, nil)

				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.roomRepo.EXPECT().
					FindAvailableTx(gomock.Any(), gomock.Any(), "type-1", "branch-1", gomock.Any()).
					Return(roomModel.Room{}, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newPreBookingService(ctrl)
			tt.setupMock(m)

			res, err := svc.Submit(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "room-1", res.RoomID)
			assert.Equal(t, "101", res.RoomNumber)
			assert.Equal(t, "Deluxe", res.RoomType)
			assert.Equal(t, "2026-09-10", res.ExpectedCheckIn)
			assert.Equal(t, "2026-09-14", res.ExpectedCheckOut)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestPreBookingService_Confirm(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	lockedPreBooking := model.PreBooking{
		ID:               "pb-1",
		GuestID:          "guest-1",
		BranchID:         "branch-1",
		RoomTypeID:       "type-1",
		RoomID:           "room-1",
		RoomNumber:       "101",
		Capacity:         3,
		Method:           constant.PreBookingMethodPhone,
		ExpectedCheckIn:  checkIn,
		ExpectedCheckOut: checkOut,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}

	overrideRequests := "late arrival"

	tests := []struct {
		name      string
		req       dto.ConfirmPreBookingRequest
		setupMock func(m preBookingMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "converts to a confirmed booking with defaulted occupancy",
			setupMock: func(m preBookingMocks) {
				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(lockedPreBooking, nil)
				m.bookingRepo.EXPECT().
					ExistsForPreBookingTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(false, nil)
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rtModel.RoomType{ID: "type-1", Name: "Deluxe", Capacity: 3, BaseRate: 150}, nil)
				m.bookingRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b bookingModel.Booking) error {
						assert.Equal(t, constant.BookingStatusConfirmed, b.Status)
						assert.Equal(t, "pb-1", *b.PreBookingID)
						assert.Equal(t, 3, b.NumAdults)
						assert.Equal(t, 0, b.NumChildren)
						assert.InEpsilon(t, 150.0, b.BookedRate, 0.001)

						return nil
					})
			},
		},
		{
			name: "confirm-time overrides replace the submitted occupancy",
			req: dto.ConfirmPreBookingRequest{
				NumAdults:       intPtr(2),
				NumChildren:     intPtr(1),
				SpecialRequests: &overrideRequests,
			},
			setupMock: func(m preBookingMocks) {
				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(lockedPreBooking, nil)
				m.bookingRepo.EXPECT().
					ExistsForPreBookingTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(false, nil)
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rtModel.RoomType{ID: "type-1", Name: "Deluxe", Capacity: 3, BaseRate: 150}, nil)
				m.bookingRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b bookingModel.Booking) error {
						assert.Equal(t, 2, b.NumAdults)
						assert.Equal(t, 1, b.NumChildren)
						assert.Equal(t, "late arrival", *b.SpecialRequests)

						return nil
					})
			},
		},
		{
			name: "unknown pre-booking",
			setupMock: func(m preBookingMocks) {
				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(model.PreBooking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "second confirmation of the same pre-booking fails",
			setupMock: func(m preBookingMocks) {
				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(lockedPreBooking, nil)
				m.bookingRepo.EXPECT().
					ExistsForPreBookingTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newPreBookingService(ctrl)
			tt.setupMock(m)

			res, err := svc.Confirm(context.Background(), "pb-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.BookingID)
			assert.Equal(t, "pb-1", res.PreBookingID)
			assert.Equal(t, "101", res.RoomNumber)
			assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
			assert.Equal(t, "2026-09-10", res.CheckInDate)
			assert.Equal(t, "2026-09-14", res.CheckOutDate)
		})
	}
}

func TestPreBookingService_Cancel(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	lockedPreBooking := model.PreBooking{
		ID:               "pb-1",
		GuestID:          "guest-1",
		BranchID:         "branch-1",
		RoomTypeID:       "type-1",
		RoomID:           "room-1",
		Capacity:         2,
		Method:           constant.PreBookingMethodWalkIn,
		ExpectedCheckIn:  checkIn,
		ExpectedCheckOut: checkOut,
	}

	tests := []struct {
		name      string
		setupMock func(m preBookingMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "releases the hold and removes the pre-booking",
			setupMock: func(m preBookingMocks) {
				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(lockedPreBooking, nil)
				m.bookingRepo.EXPECT().
					ExistsForPreBookingTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(false, nil)
				m.roomRepo.EXPECT().
					ReleaseHoldIfOverlapsTx(gomock.Any(), gomock.Any(), "room-1", daterange.Range{Start: checkIn, End: checkOut}).
					Return(nil)
				m.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown pre-booking",
			setupMock: func(m preBookingMocks) {
				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(model.PreBooking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "converted pre-booking cannot be cancelled",
			setupMock: func(m preBookingMocks) {
				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(lockedPreBooking, nil)
				m.bookingRepo.EXPECT().
					ExistsForPreBookingTx(gomock.Any(), gomock.Any(), "pb-1").
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newPreBookingService(ctrl)
			tt.setupMock(m)

			err := svc.Cancel(context.Background(), "pb-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPreBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPreBookingService(ctrl)

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	assertUnconverted := func(filter gDto.FilterGroup) {
		found := false
		for _, f := range filter.Filters {
			plain, ok := f.(gDto.Filter)
			if !ok || plain.Operator != gDto.FilterPlainQuery {
				continue
			}

			clause, _ := plain.Value.(string)
			if strings.Contains(clause, "bookings.pre_booking_id = pre_bookings.id") {
				found = true
			}
		}
		assert.True(t, found, "list reads must exclude converted pre-bookings")
	}

	m.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assertUnconverted(filter)

			return 1, nil
		})

	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.PreBooking, error) {
			assertUnconverted(filter)

			return []model.PreBooking{{ID: "pb-1", GuestID: "guest-1", RoomID: "room-1"}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.PreBookings, 1)
	assert.Equal(t, 1, res.TotalData)
}

func TestPreBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPreBookingService(ctrl)

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.PreBooking{ID: "pb-1", GuestID: "guest-1", RoomID: "room-1"}, nil)

	res, err := svc.Get(context.Background(), "pb-1")

	assert.NoError(t, err)
	assert.Equal(t, "pb-1", res.ID)

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.PreBooking{}, nil)

	_, err = svc.Get(context.Background(), "missing")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
