package prebooking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	otelMocks "atrium/infras/otel/mocks"
	"atrium/internal/domains/prebooking/model/dto"
	"atrium/internal/handlers/prebooking"
	gDto "atrium/shared/dto"
)

// stubPreBookingService records what the handler hands to the service layer.
type stubPreBookingService struct {
	listFilter    gDto.FilterGroup
	confirmedID   string
	confirmedWith dto.ConfirmPreBookingRequest
}

func (s *stubPreBookingService) Submit(_ context.Context, _ dto.SubmitPreBookingRequest) (dto.PreBookingResponse, error) {
	return dto.PreBookingResponse{}, nil
}

func (s *stubPreBookingService) Confirm(_ context.Context, id string, req dto.ConfirmPreBookingRequest) (dto.ConfirmPreBookingResponse, error) {
	s.confirmedID = id
	s.confirmedWith = req

	return dto.ConfirmPreBookingResponse{}, nil
}

func (s *stubPreBookingService) Cancel(_ context.Context, _ string) error {
	return nil
}

func (s *stubPreBookingService) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPreBookingsResponse, error) {
	s.listFilter = filter

	return dto.GetPreBookingsResponse{}, nil
}

func (s *stubPreBookingService) Count(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup) (int, error) {
	return 0, nil
}

func (s *stubPreBookingService) Get(_ context.Context, _ string) (dto.PreBookingResponse, error) {
	return dto.PreBookingResponse{}, nil
}

func TestGetPreBookings_UnfilteredListingCarriesNoConstraint(t *testing.T) {
	svc := &stubPreBookingService{}
	handler := prebooking.New(svc, otelMocks.NewOtel())

	req := httptest.NewRequest(http.MethodGet, "/v1/pre-bookings", nil)
	rec := httptest.NewRecorder()

	handler.GetPreBookings(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	where, args := svc.listFilter.GetWhereClause()
	assert.Empty(t, where, "a listing without query parameters must not constrain the result")
	assert.Empty(t, args)
}

func TestGetPreBookings_BranchFilterIsApplied(t *testing.T) {
	svc := &stubPreBookingService{}
	handler := prebooking.New(svc, otelMocks.NewOtel())

	req := httptest.NewRequest(http.MethodGet, "/v1/pre-bookings?branch_id=branch-1", nil)
	rec := httptest.NewRecorder()

	handler.GetPreBookings(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	where, args := svc.listFilter.GetWhereClause()
	assert.True(t, strings.Contains(where, "pre_bookings.branch_id = :branch_id"), "got clause %q", where)
	assert.Equal(t, "branch-1", args["branch_id"])
}

func TestConfirmPreBooking_EmptyBodyKeepsSubmittedValues(t *testing.T) {
	svc := &stubPreBookingService{}
	handler := prebooking.New(svc, otelMocks.NewOtel())

	req := httptest.NewRequest(http.MethodPost, "/v1/pre-bookings/pb-1/confirm", nil)
	rec := httptest.NewRecorder()

	handler.ConfirmPreBooking(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.confirmedWith.NumAdults)
	assert.Nil(t, svc.confirmedWith.NumChildren)
	assert.Nil(t, svc.confirmedWith.SpecialRequests)
}

func TestConfirmPreBooking_BodyOverridesAreForwarded(t *testing.T) {
	svc := &stubPreBookingService{}
	handler := prebooking.New(svc, otelMocks.NewOtel())

	body := strings.NewReader(`{"num_adults": 2, "num_children": 1, "special_requests": "late arrival"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/pre-bookings/pb-1/confirm", body)
	rec := httptest.NewRecorder()

	handler.ConfirmPreBooking(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	if assert.NotNil(t, svc.confirmedWith.NumAdults) {
		assert.Equal(t, 2, *svc.confirmedWith.NumAdults)
	}

	if assert.NotNil(t, svc.confirmedWith.NumChildren) {
		assert.Equal(t, 1, *svc.confirmedWith.NumChildren)
	}

	if assert.NotNil(t, svc.confirmedWith.SpecialRequests) {
		assert.Equal(t, "late arrival", *svc.confirmedWith.SpecialRequests)
	}
}
