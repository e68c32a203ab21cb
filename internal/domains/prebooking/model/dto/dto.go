package dto

import (
	"github.com/google/uuid"

	"atrium/internal/domains/prebooking/model"
	"atrium/shared"
	"atrium/shared/constant"
	"atrium/shared/daterange"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type SubmitPreBookingRequest struct {
	GuestID          string  `json:"guest_id"           validate:"required"`
	BranchID         string  `json:"branch_id"          validate:"required"`
	RoomTypeID       string  `json:"room_type_id"       validate:"required"`
	Capacity         int     `json:"capacity"           validate:"required,min=1"`
	Method           string  `json:"method"             validate:"required,oneof=Online Phone Walk_in"`
	ExpectedCheckIn  string  `json:"expected_check_in"  validate:"required,dateonly"`
	ExpectedCheckOut string  `json:"expected_check_out" validate:"required,dateonly"`
	NumAdults        int     `json:"num_adults"         validate:"omitempty,min=0"`
	NumChildren      int     `json:"num_children"       validate:"omitempty,min=0"`
	SpecialRequests  *string `json:"special_requests"   validate:"omitempty,max=500"`
}

func (c *SubmitPreBookingRequest) ToModel(user, roomID string, stay daterange.Range) model.PreBooking {
	return model.PreBooking{
		ID:               uuid.NewString(),
		GuestID:          c.GuestID,
		BranchID:         c.BranchID,
		RoomTypeID:       c.RoomTypeID,
		RoomID:           roomID,
		Capacity:         c.Capacity,
		Method:           c.Method,
		ExpectedCheckIn:  stay.Start,
		ExpectedCheckOut: stay.End,
		NumAdults:        c.NumAdults,
		NumChildren:      c.NumChildren,
		SpecialRequests:  c.SpecialRequests,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// ConfirmPreBookingRequest carries optional confirm-time overrides. Fields left
// out of the body keep the values recorded at submission.
type ConfirmPreBookingRequest struct {
	NumAdults       *int    `json:"num_adults"       validate:"omitempty,min=1"`
	NumChildren     *int    `json:"num_children"     validate:"omitempty,min=0"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=500"`
}

type PreBookingResponse struct {
	ID               string  `json:"id"`
	GuestID          string  `json:"guest_id"`
	GuestName        string  `json:"guest_name,omitempty"`
	BranchID         string  `json:"branch_id"`
	RoomTypeID       string  `json:"room_type_id"`
	RoomType         string  `json:"room_type,omitempty"`
	RoomID           string  `json:"room_id"`
	RoomNumber       string  `json:"room_number,omitempty"`
	Capacity         int     `json:"capacity"`
	Method           string  `json:"method"`
	ExpectedCheckIn  string  `json:"expected_check_in"`
	ExpectedCheckOut string  `json:"expected_check_out"`
	NumAdults        int     `json:"num_adults"`
	NumChildren      int     `json:"num_children"`
	SpecialRequests  *string `json:"special_requests,omitempty"`
	gDto.Metadata
}

func (r *PreBookingResponse) FromModel(model model.PreBooking) {
	r.ID = model.ID
	r.GuestID = model.GuestID
	r.GuestName = model.GuestName
	r.BranchID = model.BranchID
	r.RoomTypeID = model.RoomTypeID
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.Capacity = model.Capacity
	r.Method = model.Method
	r.ExpectedCheckIn = model.ExpectedCheckIn.Format(constant.DateOnlyFormat)
	r.ExpectedCheckOut = model.ExpectedCheckOut.Format(constant.DateOnlyFormat)
	r.NumAdults = model.NumAdults
	r.NumChildren = model.NumChildren
	r.SpecialRequests = model.SpecialRequests
	r.Metadata.FromModel(model.Metadata)
}

type GetPreBookingsResponse struct {
	PreBookings []PreBookingResponse `json:"pre_bookings"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetPreBookingsResponse) FromModels(models []model.PreBooking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.PreBookings = make([]PreBookingResponse, len(models))
	for i, mod := range models {
		r.PreBookings[i].FromModel(mod)
	}
}

type ConfirmPreBookingResponse struct {
	BookingID    string  `json:"booking_id"`
	PreBookingID string  `json:"pre_booking_id"`
	GuestID      string  `json:"guest_id"`
	RoomID       string  `json:"room_id"`
	RoomNumber   string  `json:"room_number,omitempty"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	Status       string  `json:"status"`
	NumAdults    int     `json:"num_adults"`
	NumChildren  int     `json:"num_children"`
	BookedRate   float64 `json:"booked_rate"`
}

type PreBookingEvent struct {
	Event        string `json:"event"`
	PreBookingID string `json:"pre_booking_id"`
	BookingID    string `json:"booking_id,omitempty"`
	GuestID      string `json:"guest_id"`
	BranchID     string `json:"branch_id"`
	RoomID       string `json:"room_id"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
}
