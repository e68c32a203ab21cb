package model

import "atrium/shared/model"

const (
	TableName  = "branches"
	EntityName = "branch"

	FieldID          = "id"
	FieldName        = "name"
	FieldCode        = "code"
	FieldAddress     = "address"
	FieldContactNo   = "contact_no"
	FieldManagerName = "manager_name"
)

type Branch struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Code        string `db:"code"`
	Address     string `db:"address"`
	ContactNo   string `db:"contact_no"`
	ManagerName string `db:"manager_name"`
	model.Metadata
}
