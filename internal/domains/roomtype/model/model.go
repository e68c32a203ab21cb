package model

import "atrium/shared/model"

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID       = "id"
	FieldName     = "name"
	FieldCapacity = "capacity"
	FieldBaseRate = "base_rate"
)

type RoomType struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Capacity int     `db:"capacity"`
	BaseRate float64 `db:"base_rate"`
	model.Metadata
}
