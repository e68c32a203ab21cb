package model

import (
	"time"

	"atrium/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldPreBookingID    = "pre_booking_id"
	FieldGuestID         = "guest_id"
	FieldRoomID          = "room_id"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldStatus          = "status"
	FieldNumAdults       = "num_adults"
	FieldNumChildren     = "num_children"
	FieldSpecialRequests = "special_requests"
	FieldBookedRate      = "booked_rate"
)

// Booking is a confirmed stay. PreBookingID links back to the pre-booking it was
// converted from; direct bookings leave it nil.
type Booking struct {
	ID              string    `db:"id"`
	PreBookingID    *string   `db:"pre_booking_id"`
	GuestID         string    `db:"guest_id"`
	RoomID          string    `db:"room_id"`
	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	Status          string    `db:"status"`
	NumAdults       int       `db:"num_adults"`
	NumChildren     int       `db:"num_children"`
	SpecialRequests *string   `db:"special_requests"`
	BookedRate      float64   `db:"booked_rate"`
	model.Metadata
}
