package model

import "atrium/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID         = "id"
	FieldFullName   = "full_name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldIDDocument = "id_document"
)

type Guest struct {
	ID         string  `db:"id"`
	FullName   string  `db:"full_name"`
	Email      *string `db:"email"`
	Phone      *string `db:"phone"`
	IDDocument *string `db:"id_document"`
	model.Metadata
}
