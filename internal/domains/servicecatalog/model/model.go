package model

import "atrium/shared/model"

const (
	TableName  = "service_catalog"
	EntityName = "service_catalog"

	FieldID        = "id"
	FieldName      = "name"
	FieldUnitPrice = "unit_price"
	FieldActive    = "active"
)

type Service struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	UnitPrice float64 `db:"unit_price"`
	Active    bool    `db:"active"`
	model.Metadata
}
