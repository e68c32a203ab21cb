package dto

import (
	"time"

	"github.com/google/uuid"

	catalogModel "atrium/internal/domains/servicecatalog/model"
	"atrium/internal/domains/serviceusage/model"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type CreateServiceUsageRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	ServiceID string `json:"service_id" validate:"required"`
	Qty       int    `json:"qty"        validate:"required,min=1"`
	UsedOn    string `json:"used_on"    validate:"omitempty,dateonly"`
}

func (c *CreateServiceUsageRequest) ToModel(user string, usedOn time.Time, unitPrice float64) model.ServiceUsage {
	return model.ServiceUsage{
		ID:             uuid.NewString(),
		BookingID:      c.BookingID,
		ServiceID:      c.ServiceID,
		Qty:            c.Qty,
		UsedOn:         usedOn,
		UnitPriceAtUse: unitPrice,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ServiceUsageResponse struct {
	ID             string  `json:"id"`
	BookingID      string  `json:"booking_id"`
	ServiceID      string  `json:"service_id"`
	ServiceName    string  `json:"service_name,omitempty"`
	Qty            int     `json:"qty"`
	UsedOn         string  `json:"used_on"`
	UnitPriceAtUse float64 `json:"unit_price_at_use"`
	TotalCharge    float64 `json:"total_charge"`
	gDto.Metadata
}

func (r *ServiceUsageResponse) FromModel(model model.ServiceUsage) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.ServiceID = model.ServiceID
	r.ServiceName = model.ServiceName
	r.Qty = model.Qty
	r.UsedOn = model.UsedOn.Format(constant.DateOnlyFormat)
	r.UnitPriceAtUse = model.UnitPriceAtUse
	r.TotalCharge = float64(model.Qty) * model.UnitPriceAtUse
	r.Metadata.FromModel(model.Metadata)
}

type GetServiceUsagesResponse struct {
	ServiceUsages []ServiceUsageResponse `json:"service_usages"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetServiceUsagesResponse) FromModels(models []model.ServiceUsage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.ServiceUsages = make([]ServiceUsageResponse, len(models))
	for i, mod := range models {
		r.ServiceUsages[i].FromModel(mod)
	}
}

type ServiceResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Active    bool    `json:"active"`
}

func (r *ServiceResponse) FromModel(model catalogModel.Service) {
	r.ID = model.ID
	r.Name = model.Name
	r.UnitPrice = model.UnitPrice
	r.Active = model.Active
}

type GetServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

func (r *GetServicesResponse) FromModels(models []catalogModel.Service) {
	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
