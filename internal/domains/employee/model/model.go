package model

import "atrium/shared/model"

const (
	TableName  = "employees"
	EntityName = "employee"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldBranchID  = "branch_id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldContactNo = "contact_no"

	JoinedFieldRole       = "role"
	JoinedFieldBranchName = "name"
)

type Employee struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	BranchID  string `db:"branch_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	ContactNo string `db:"contact_no"`

	BranchName string `column:"name"     db:"branch_name" table:"branches"`
	Username   string `column:"username" db:"username"    table:"user_accounts"`
	Role       string `column:"role"     db:"role"        table:"user_accounts"`
	model.Metadata
}

func (Employee) GetJoinQuery() string {
	return "LEFT JOIN branches ON branches.id = employees.branch_id " +
		"LEFT JOIN user_accounts ON user_accounts.id = employees.user_id"
}
