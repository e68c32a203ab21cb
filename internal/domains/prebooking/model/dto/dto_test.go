package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atrium/internal/domains/prebooking/model"
	"atrium/internal/domains/prebooking/model/dto"
	"atrium/shared/daterange"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

func TestSubmitPreBookingRequest_ToModel(t *testing.T) {
	notes := "late arrival"
	req := dto.SubmitPreBookingRequest{
		GuestID:         "guest-1",
		BranchID:        "branch-1",
		RoomTypeID:      "type-1",
		Capacity:        2,
		Method:          "Online",
		NumAdults:       2,
		NumChildren:     1,
		SpecialRequests: &notes,
	}

	stay := daterange.Range{
		Start: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	}

	userID := "test-user-id"
	preBooking := req.ToModel(userID, "room-7", stay)

	assert.NotEmpty(t, preBooking.ID, "expected ID to be generated")
	assert.Equal(t, req.GuestID, preBooking.GuestID)
	assert.Equal(t, req.BranchID, preBooking.BranchID)
	assert.Equal(t, req.RoomTypeID, preBooking.RoomTypeID)
	assert.Equal(t, "room-7", preBooking.RoomID)
	assert.Equal(t, stay.Start, preBooking.ExpectedCheckIn)
	assert.Equal(t, stay.End, preBooking.ExpectedCheckOut)
	assert.Equal(t, req.NumAdults, preBooking.NumAdults)
	assert.Equal(t, req.NumChildren, preBooking.NumChildren)
	assert.Equal(t, &notes, preBooking.SpecialRequests)
	assert.Equal(t, userID, preBooking.CreatedBy)
	assert.Equal(t, userID, preBooking.ModifiedBy)
	assert.False(t, preBooking.CreatedAt.IsZero(), "expected CreatedAt to be set")
	assert.False(t, preBooking.ModifiedAt.IsZero(), "expected ModifiedAt to be set")
}

func TestPreBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	preBooking := model.PreBooking{
		ID:               "pb-1",
		GuestID:          "guest-1",
		GuestName:        "Ada Lovelace",
		BranchID:         "branch-1",
		RoomTypeID:       "type-1",
		RoomID:           "room-7",
		RoomNumber:       "101",
		Capacity:         2,
		Method:           "Phone",
		ExpectedCheckIn:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		ExpectedCheckOut: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		NumAdults:        2,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.PreBookingResponse
	response.FromModel(preBooking)

	assert.Equal(t, preBooking.ID, response.ID)
	assert.Equal(t, preBooking.GuestName, response.GuestName)
	assert.Equal(t, preBooking.RoomNumber, response.RoomNumber)
	assert.Equal(t, "2026-09-10", response.ExpectedCheckIn)
	assert.Equal(t, "2026-09-12", response.ExpectedCheckOut)
	assert.Equal(t, preBooking.CreatedBy, response.CreatedBy)
	assert.Equal(t, preBooking.ModifiedBy, response.ModifiedBy)
}

func TestGetPreBookingsResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	models := []model.PreBooking{
		{
			ID:               "pb-1",
			RoomID:           "room-1",
			ExpectedCheckIn:  now,
			ExpectedCheckOut: now.AddDate(0, 0, 2),
		},
		{
			ID:               "pb-2",
			RoomID:           "room-2",
			ExpectedCheckIn:  now,
			ExpectedCheckOut: now.AddDate(0, 0, 1),
		},
	}

	var response dto.GetPreBookingsResponse
	response.FromModels(models, 12, 5)

	assert.Len(t, response.PreBookings, 2)
	assert.Equal(t, 12, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
	assert.Equal(t, "pb-1", response.PreBookings[0].ID)
	assert.Equal(t, "pb-2", response.PreBookings[1].ID)
}
