package model

import (
	"time"

	"atrium/shared/model"
)

const (
	TableName  = "pre_bookings"
	EntityName = "pre_booking"

	FieldID               = "id"
	FieldGuestID          = "guest_id"
	FieldBranchID         = "branch_id"
	FieldRoomTypeID       = "room_type_id"
	FieldRoomID           = "room_id"
	FieldCapacity         = "capacity"
	FieldMethod           = "method"
	FieldExpectedCheckIn  = "expected_check_in"
	FieldExpectedCheckOut = "expected_check_out"
	FieldNumAdults        = "num_adults"
	FieldNumChildren      = "num_children"
	FieldSpecialRequests  = "special_requests"
)

// PreBooking is a tentative reservation. A persisted row always has a room
// assigned; submission fails when no room fits the requested stay.
type PreBooking struct {
	ID               string    `db:"id"`
	GuestID          string    `db:"guest_id"`
	BranchID         string    `db:"branch_id"`
	RoomTypeID       string    `db:"room_type_id"`
	RoomID           string    `db:"room_id"`
	Capacity         int       `db:"capacity"`
	Method           string    `db:"method"`
	ExpectedCheckIn  time.Time `db:"expected_check_in"`
	ExpectedCheckOut time.Time `db:"expected_check_out"`
	NumAdults        int       `db:"num_adults"`
	NumChildren      int       `db:"num_children"`
	SpecialRequests  *string   `db:"special_requests"`

	RoomNumber string `column:"room_number" db:"room_number" table:"rooms"`
	GuestName  string `column:"full_name"   db:"guest_name"  table:"guests"`
	model.Metadata
}

func (PreBooking) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = pre_bookings.room_id " +
		"LEFT JOIN guests ON guests.id = pre_bookings.guest_id"
}
