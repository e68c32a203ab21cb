package dto

import (
	"atrium/internal/domains/branch/model"
	"atrium/shared"
	gDto "atrium/shared/dto"
)

type BranchResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Address     string `json:"address"`
	ContactNo   string `json:"contact_no"`
	ManagerName string `json:"manager_name"`
	gDto.Metadata
}

func (r *BranchResponse) FromModel(model model.Branch) {
	r.ID = model.ID
	r.Name = model.Name
	r.Code = model.Code
	r.Address = model.Address
	r.ContactNo = model.ContactNo
	r.ManagerName = model.ManagerName
	r.Metadata.FromModel(model.Metadata)
}

type GetBranchesResponse struct {
	Branches  []BranchResponse `json:"branches"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetBranchesResponse) FromModels(models []model.Branch, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Branches = make([]BranchResponse, len(models))
	for i, mod := range models {
		r.Branches[i].FromModel(mod)
	}
}
