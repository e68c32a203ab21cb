package model

import (
	"time"

	"atrium/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID              = "id"
	FieldBranchID        = "branch_id"
	FieldRoomTypeID      = "room_type_id"
	FieldRoomNumber      = "room_number"
	FieldStatus          = "status"
	FieldFutureStatus    = "future_status"
	FieldUnavailableFrom = "unavailable_from"
	FieldUnavailableTo   = "unavailable_to"
	FieldImage           = "image"
)

// Room carries the tentative hold alongside the persistent status: a pre-booking
// marks the room with future_status = 'Unavailable' and the hold interval in
// unavailable_from/unavailable_to. At most one hold per room.
type Room struct {
	ID              string     `db:"id"`
	BranchID        string     `db:"branch_id"`
	RoomTypeID      string     `db:"room_type_id"`
	RoomNumber      string     `db:"room_number"`
	Status          string     `db:"status"`
	FutureStatus    *string    `db:"future_status"`
	UnavailableFrom *time.Time `db:"unavailable_from"`
	UnavailableTo   *time.Time `db:"unavailable_to"`
	Image           *string    `db:"image"`
	model.Metadata
}
