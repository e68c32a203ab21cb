package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atrium/config"
	otelMocks "atrium/infras/otel/mocks"
	s3Mocks "atrium/infras/s3/mocks"
	branchMocks "atrium/internal/domains/branch/mocks"
	roomMocks "atrium/internal/domains/room/mocks"
	"atrium/internal/domains/room/model"
	"atrium/internal/domains/room/model/dto"
	"atrium/internal/domains/room/service"
	roomTypeMocks "atrium/internal/domains/roomtype/mocks"
	rtModel "atrium/internal/domains/roomtype/model"
	"atrium/shared/cache"
	cacheMocks "atrium/shared/cache/mocks"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
)

type roomServiceMocks struct {
	repo         *roomMocks.MockRoom
	roomTypeRepo *roomTypeMocks.MockRoomType
	branchRepo   *branchMocks.MockBranch
	cache        *cacheMocks.MockRedisCache
	s3           *s3Mocks.MockS3
}

func newRoomService(ctrl *gomock.Controller) (service.Room, roomServiceMocks) {
	m := roomServiceMocks{
		repo:         roomMocks.NewMockRoom(ctrl),
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		branchRepo:   branchMocks.NewMockBranch(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		s3:           s3Mocks.NewMockS3(ctrl),
	}

	// mutations invalidate list caches off the request path
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(
		m.repo,
		m.roomTypeRepo,
		m.branchRepo,
		&config.Config{},
		m.cache,
		otelMocks.NewOtel(),
		m.s3,
	)

	return svc, m
}

func TestRoomService_Create(t *testing.T) {
	validReq := dto.CreateRoomRequest{
		BranchID:   "branch-1",
		RoomTypeID: "type-1",
		RoomNumber: "204",
	}

	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(m roomServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "creates a room without a photo",
			req:  validReq,
			setupMock: func(m roomServiceMocks) {
				m.branchRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, room model.Room) error {
						assert.NotEmpty(t, room.ID)
						assert.Equal(t, "204", room.RoomNumber)
						assert.Equal(t, constant.RoomStatusAvailable, room.Status)
						assert.Nil(t, room.Image)

						return nil
					})
			},
		},
		{
			name: "uploads the photo and stores its URL",
			req: dto.CreateRoomRequest{
				BranchID:   "branch-1",
				RoomTypeID: "type-1",
				RoomNumber: "204",
				Image:      &multipart.FileHeader{Filename: "room.png"},
			},
			setupMock: func(m roomServiceMocks) {
				m.branchRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/room/abc.png", nil)
				m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, room model.Room) error {
						if assert.NotNil(t, room.Image) {
							assert.Equal(t, "https://cdn.example.com/room/abc.png", *room.Image)
						}

						return nil
					})
			},
		},
		{
			name: "deletes the uploaded photo when the insert fails",
			req: dto.CreateRoomRequest{
				BranchID:   "branch-1",
				RoomTypeID: "type-1",
				RoomNumber: "204",
				Image:      &multipart.FileHeader{Filename: "room.png"},
			},
			setupMock: func(m roomServiceMocks) {
				m.branchRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/room/abc.png", nil)
				m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("duplicate room number"))
				m.s3.EXPECT().DeleteFile(gomock.Any(), gomock.Any(), model.EntityName, gomock.Any()).Return(nil)
			},
			wantErr: true,
		},
		{
			name: "rejects an unknown branch",
			req:  validReq,
			setupMock: func(m roomServiceMocks) {
				m.branchRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "rejects an unknown room type",
			req:  validReq,
			setupMock: func(m roomServiceMocks) {
				m.branchRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newRoomService(ctrl)
			tt.setupMock(m)

			err := svc.Create(context.Background(), tt.req)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	t.Run("returns the room on a cache miss", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newRoomService(ctrl)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{
			ID:         "room-1",
			RoomNumber: "101",
			Status:     constant.RoomStatusAvailable,
		}, nil)

		res, err := svc.Get(context.Background(), "room-1")

		assert.NoError(t, err)
		assert.Equal(t, "room-1", res.ID)
		assert.Equal(t, "101", res.RoomNumber)
	})

	t.Run("returns 404 for an unknown room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newRoomService(ctrl)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_GetRoomTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newRoomService(ctrl)

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	m.roomTypeRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]rtModel.RoomType, error) {
			assert.Equal(t, rtModel.FieldName, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []rtModel.RoomType{
				{ID: "type-1", Name: "Deluxe", Capacity: 2, BaseRate: 180},
				{ID: "type-2", Name: "Suite", Capacity: 4, BaseRate: 320},
			}, nil
		})

	res, err := svc.GetRoomTypes(context.Background())

	assert.NoError(t, err)
	assert.Len(t, res.RoomTypes, 2)
	assert.Equal(t, "Deluxe", res.RoomTypes[0].Name)
	assert.Equal(t, 320.0, res.RoomTypes[1].BaseRate)
}
