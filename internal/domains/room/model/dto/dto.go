package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"atrium/internal/domains/room/model"
	roomTypeModel "atrium/internal/domains/roomtype/model"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type CreateRoomRequest struct {
	BranchID   string                `json:"branch_id"    validate:"required"`
	RoomTypeID string                `json:"room_type_id" validate:"required"`
	RoomNumber string                `json:"room_number"  validate:"required,max=20"`
	Status     string                `json:"status"       validate:"omitempty,oneof=Available Unavailable Maintenance"`
	Image      *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile  multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	status := constant.RoomStatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	var image *string
	if imageURL != constant.Empty {
		image = &imageURL
	}

	return model.Room{
		ID:         uuid.NewString(),
		BranchID:   c.BranchID,
		RoomTypeID: c.RoomTypeID,
		RoomNumber: c.RoomNumber,
		Status:     status,
		Image:      image,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RoomResponse struct {
	ID              string  `json:"id"`
	BranchID        string  `json:"branch_id"`
	RoomTypeID      string  `json:"room_type_id"`
	RoomNumber      string  `json:"room_number"`
	Status          string  `json:"status"`
	FutureStatus    *string `json:"future_status,omitempty"`
	UnavailableFrom *string `json:"unavailable_from,omitempty"`
	UnavailableTo   *string `json:"unavailable_to,omitempty"`
	Image           *string `json:"image,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.BranchID = model.BranchID
	r.RoomTypeID = model.RoomTypeID
	r.RoomNumber = model.RoomNumber
	r.Status = model.Status
	r.FutureStatus = model.FutureStatus
	r.Image = model.Image

	if model.UnavailableFrom != nil {
		from := model.UnavailableFrom.Format(constant.DateOnlyFormat)
		r.UnavailableFrom = &from
	}

	if model.UnavailableTo != nil {
		to := model.UnavailableTo.Format(constant.DateOnlyFormat)
		r.UnavailableTo = &to
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type RoomTypeResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Capacity int     `json:"capacity"`
	BaseRate float64 `json:"base_rate"`
}

func (r *RoomTypeResponse) FromModel(model roomTypeModel.RoomType) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.BaseRate = model.BaseRate
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
}

func (r *GetRoomTypesResponse) FromModels(models []roomTypeModel.RoomType) {
	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}
