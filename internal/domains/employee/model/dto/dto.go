package dto

import (
	"atrium/internal/domains/employee/model"
	"atrium/shared"
	gDto "atrium/shared/dto"
)

type EmployeeResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ContactNo  string `json:"contact_no"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	gDto.Metadata
}

func (r *EmployeeResponse) FromModel(model model.Employee) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.BranchID = model.BranchID
	r.BranchName = model.BranchName
	r.Name = model.Name
	r.Email = model.Email
	r.ContactNo = model.ContactNo
	r.Username = model.Username
	r.Role = model.Role
	r.Metadata.FromModel(model.Metadata)
}

type GetEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetEmployeesResponse) FromModels(models []model.Employee, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Employees = make([]EmployeeResponse, len(models))
	for i, mod := range models {
		r.Employees[i].FromModel(mod)
	}
}
