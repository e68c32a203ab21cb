package model

import (
	"time"

	"atrium/shared/model"
)

const (
	TableName  = "service_usages"
	EntityName = "service_usage"

	FieldID             = "id"
	FieldBookingID      = "booking_id"
	FieldServiceID      = "service_id"
	FieldQty            = "qty"
	FieldUsedOn         = "used_on"
	FieldUnitPriceAtUse = "unit_price_at_use"
)

// ServiceUsage records a chargeable service against a booking. UnitPriceAtUse
// snapshots the catalog price at the time of use; later catalog edits must not
// change what the guest is billed.
type ServiceUsage struct {
	ID             string    `db:"id"`
	BookingID      string    `db:"booking_id"`
	ServiceID      string    `db:"service_id"`
	Qty            int       `db:"qty"`
	UsedOn         time.Time `db:"used_on"`
	UnitPriceAtUse float64   `db:"unit_price_at_use"`

	ServiceName string `column:"name" db:"service_name" table:"service_catalog"`
	model.Metadata
}

func (ServiceUsage) GetJoinQuery() string {
	return "LEFT JOIN service_catalog ON service_catalog.id = service_usages.service_id"
}
