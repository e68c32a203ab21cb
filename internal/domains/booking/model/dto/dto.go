package dto

import (
	"github.com/google/uuid"

	"atrium/internal/domains/booking/model"
	"atrium/shared"
	"atrium/shared/constant"
	"atrium/shared/daterange"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

// CreateBookingRequest is a direct staff booking. The room is pre-selected by
// the desk, so no availability check runs; overbooking a room this way is the
// operator's call.
type CreateBookingRequest struct {
	GuestID         string  `json:"guest_id"         validate:"required"`
	RoomID          string  `json:"room_id"          validate:"required"`
	CheckInDate     string  `json:"check_in_date"    validate:"required,dateonly"`
	CheckOutDate    string  `json:"check_out_date"   validate:"required,dateonly"`
	NumAdults       int     `json:"num_adults"       validate:"required,min=1"`
	NumChildren     int     `json:"num_children"     validate:"omitempty,min=0"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=500"`
	BookedRate      float64 `json:"booked_rate"      validate:"omitempty,min=0"`
}

func (c *CreateBookingRequest) ToModel(user string, stay daterange.Range, rate float64) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		GuestID:         c.GuestID,
		RoomID:          c.RoomID,
		CheckInDate:     stay.Start,
		CheckOutDate:    stay.End,
		Status:          constant.BookingStatusConfirmed,
		NumAdults:       c.NumAdults,
		NumChildren:     c.NumChildren,
		SpecialRequests: c.SpecialRequests,
		BookedRate:      rate,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=Checked-In Checked-Out Cancelled"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	PreBookingID    *string `json:"pre_booking_id,omitempty"`
	GuestID         string  `json:"guest_id"`
	RoomID          string  `json:"room_id"`
	CheckInDate     string  `json:"check_in_date"`
	CheckOutDate    string  `json:"check_out_date"`
	Status          string  `json:"status"`
	NumAdults       int     `json:"num_adults"`
	NumChildren     int     `json:"num_children"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	BookedRate      float64 `json:"booked_rate"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.PreBookingID = model.PreBookingID
	r.GuestID = model.GuestID
	r.RoomID = model.RoomID
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Status = model.Status
	r.NumAdults = model.NumAdults
	r.NumChildren = model.NumChildren
	r.SpecialRequests = model.SpecialRequests
	r.BookedRate = model.BookedRate
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BookingEvent struct {
	Event        string  `json:"event"`
	BookingID    string  `json:"booking_id"`
	PreBookingID *string `json:"pre_booking_id,omitempty"`
	GuestID      string  `json:"guest_id"`
	RoomID       string  `json:"room_id"`
	Status       string  `json:"status"`
	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out"`
}
