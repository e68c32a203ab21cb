package service_test

import (
	"context"
	"errors"
	"net/http"
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
	"atrium/internal/domains/booking/model"
	"atrium/internal/domains/booking/model/dto"
	"atrium/internal/domains/booking/service"
	guestMocks "atrium/internal/domains/guest/mocks"
	roomMocks "atrium/internal/domains/room/mocks"
	roomModel "atrium/internal/domains/room/model"
	roomTypeMocks "atrium/internal/domains/roomtype/mocks"
	rtModel "atrium/internal/domains/roomtype/model"
	cacheMocks "atrium/shared/cache/mocks"
	"atrium/shared/constant"
	"atrium/shared/daterange"
	"atrium/shared/failure"
)

type bookingMockSet struct {
	repo         *bookingMocks.MockBooking
	roomRepo     *roomMocks.MockRoom
	guestRepo    *guestMocks.MockGuest
	roomTypeRepo *roomTypeMocks.MockRoomType
	txRunner     *txMocks.MockTxRunner
	cache        *cacheMocks.MockRedisCache
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingMockSet) {
	m := bookingMockSet{
		repo:         bookingMocks.NewMockBooking(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		guestRepo:    guestMocks.NewMockGuest(ctrl),
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		txRunner:     txMocks.NewMockTxRunner(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	mockKafka := kafkaMocks.NewMockClient(ctrl)

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(
		m.repo,
		m.roomRepo,
		m.guestRepo,
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

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		GuestID:      "guest-1",
		RoomID:       "room-1",
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-14",
		NumAdults:    2,
		BookedRate:   180,
	}

	bookedRoom := roomModel.Room{
		ID:         "room-1",
		BranchID:   "branch-1",
		RoomTypeID: "type-1",
		RoomNumber: "101",
		Status:     constant.RoomStatusAvailable,
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(m bookingMockSet)
		wantErr   bool
		wantCode  int
		wantRate  float64
	}{
		{
			name: "creates a confirmed booking with the quoted rate",
			req:  validReq,
			setupMock: func(m bookingMockSet) {
				m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookedRoom, nil)
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b model.Booking) error {
						assert.Equal(t, constant.BookingStatusConfirmed, b.Status)
						assert.Nil(t, b.PreBookingID)
						assert.InEpsilon(t, 180.0, b.BookedRate, 0.001)

						return nil
					})
			},
			wantRate: 180,
		},
		{
			name: "falls back to the room type base rate",
			req: dto.CreateBookingRequest{
				GuestID:      "guest-1",
				RoomID:       "room-1",
				CheckInDate:  "2026-09-10",
				CheckOutDate: "2026-09-14",
				NumAdults:    2,
			},
			setupMock: func(m bookingMockSet) {
				m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookedRoom, nil)
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rtModel.RoomType{ID: "type-1", BaseRate: 120}, nil)
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b model.Booking) error {
						assert.InEpsilon(t, 120.0, b.BookedRate, 0.001)

						return nil
					})
			},
			wantRate: 120,
		},
		{
			name: "check-out before check-in is rejected",
			req: dto.CreateBookingRequest{
				GuestID:      "guest-1",
				RoomID:       "room-1",
				CheckInDate:  "2026-09-14",
				CheckOutDate: "2026-09-10",
				NumAdults:    2,
			},
			setupMock: func(m bookingMockSet) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown guest",
			req:  validReq,
			setupMock: func(m bookingMockSet) {
				m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown room",
			req:  validReq,
			setupMock: func(m bookingMockSet) {
				m.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newBookingService(ctrl)
			tt.setupMock(m)

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
			assert.InEpsilon(t, tt.wantRate, res.BookedRate, 0.001)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	preBookingID := "pb-1"

	confirmedBooking := model.Booking{
		ID:           "booking-1",
		GuestID:      "guest-1",
		RoomID:       "room-1",
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       constant.BookingStatusConfirmed,
		NumAdults:    2,
		BookedRate:   150,
	}

	tests := []struct {
		name      string
		req       dto.UpdateBookingStatusRequest
		setupMock func(m bookingMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "checks a confirmed booking in",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCheckedIn},
			setupMock: func(m bookingMockSet) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking, nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, constant.BookingStatusCheckedIn, fields[model.FieldStatus])

						return nil
					})
			},
		},
		{
			name: "cancelling a converted booking releases the hold in one transaction",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCancelled},
			setupMock: func(m bookingMockSet) {
				converted := confirmedBooking
				converted.PreBookingID = &preBookingID

				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(converted, nil)

				m.txRunner.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

				m.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
				m.roomRepo.EXPECT().
					ReleaseHoldIfOverlapsTx(gomock.Any(), gomock.Any(), "room-1", daterange.Range{Start: checkIn, End: checkOut}).
					Return(nil)
			},
		},
		{
			name: "cancelling a direct booking skips the hold release",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCancelled},
			setupMock: func(m bookingMockSet) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking, nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "checked-out booking cannot move again",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCheckedIn},
			setupMock: func(m bookingMockSet) {
				terminal := confirmedBooking
				terminal.Status = constant.BookingStatusCheckedOut

				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(terminal, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown booking",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCheckedIn},
			setupMock: func(m bookingMockSet) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error surfaces",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCheckedIn},
			setupMock: func(m bookingMockSet) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newBookingService(ctrl)
			tt.setupMock(m)

			res, err := svc.UpdateStatus(context.Background(), "booking-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.req.Status, res.Status)
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Booking{ID: "booking-1", Status: constant.BookingStatusConfirmed}, nil)

	res, err := svc.Get(context.Background(), "booking-1")

	assert.NoError(t, err)
	assert.Equal(t, "booking-1", res.ID)

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Booking{}, nil)

	_, err = svc.Get(context.Background(), "missing")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
