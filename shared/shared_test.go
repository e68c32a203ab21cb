package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"atrium/shared"
	"atrium/shared/constant"
	"atrium/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "not-a-bool",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total falls back to one page",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit falls back to one page",
			total:    25,
			limit:    0,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    20,
			limit:    10,
			expected: 2,
		},
		{
			name:     "remainder rounds up",
			total:    21,
			limit:    10,
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name   string `db:"name"`
		Status string `db:"status"`
		Rate   int    `db:"rate"`
	}

	fields := shared.TransformFields(update{Name: "Deluxe", Rate: 150}, "admin")

	assert.Equal(t, "Deluxe", fields["name"])
	assert.Equal(t, 150, fields["rate"])
	assert.NotContains(t, fields, "status")
	assert.Equal(t, "admin", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("abc-123", "booking_id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.booking_id = :booking_id)", where)
	assert.Equal(t, map[string]any{"booking_id": "abc-123"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "bookings:abc", shared.BuildCacheKey("bookings", "abc"))
	assert.Equal(t, "bookings:*", shared.BuildCacheKey("bookings", constant.Asterix))
	assert.Equal(t, "rooms", shared.BuildCacheKey("rooms"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}
	filter := shared.FilterByID("abc-123", "branch_id", "rooms")

	first := shared.BuildCacheKeyWithQuery("rooms", params, filter)
	second := shared.BuildCacheKeyWithQuery("rooms", params, filter)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "rooms:")

	other := shared.BuildCacheKeyWithQuery("rooms", dto.QueryParams{Page: 2, Limit: 10}, filter)
	assert.NotEqual(t, first, other)
}

func boolPtr(b bool) *bool {
	return &b
}
