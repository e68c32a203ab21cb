package dto_test

import (
	"net/http"
	"net/url"
	"reflect"
	"atrium/shared/constant"
	"atrium/shared/dto"
	"atrium/shared/model"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	// Create test time values
	createdAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "front-desk",
		ModifiedBy: "night-audit",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := createdAt.Format(constant.DateFormat)
	expectedModifiedAt := modifiedAt.Format(constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "front-desk" {
		t.Errorf("expected CreatedBy to be 'front-desk', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "night-audit" {
		t.Errorf("expected ModifiedBy to be 'night-audit', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "room_number",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "room_number",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    0,
				Limit:   0,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with zero page parameter",
			queryParams: map[string]string{
				"page": "0",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid limit parameter",
			queryParams: map[string]string{
				"limit": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative limit parameter",
			queryParams: map[string]string{
				"limit": "-10",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "check_in_date",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    3,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "check_in_date",
				SortDir: "", // Empty when not provided
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a URL with query parameters
			baseURL := "http://example.com/v1/rooms"
			u, err := url.Parse(baseURL)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			// Add query parameters
			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			// Create HTTP request
			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			// Test the method
			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			// Verify results
			if queryParams.Page != tt.expected.Page {
				t.Errorf("expected Page to be %d, got %d", tt.expected.Page, queryParams.Page)
			}
			if queryParams.Limit != tt.expected.Limit {
				t.Errorf("expected Limit to be %d, got %d", tt.expected.Limit, queryParams.Limit)
			}
			if queryParams.SortBy != tt.expected.SortBy {
				t.Errorf("expected SortBy to be %s, got %s", tt.expected.SortBy, queryParams.SortBy)
			}
			if queryParams.SortDir != tt.expected.SortDir {
				t.Errorf("expected SortDir to be %s, got %s", tt.expected.SortDir, queryParams.SortDir)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name: "eq with table prefix",
			filter: dto.Filter{
				Field:    "branch_id",
				Value:    "branch-1",
				Operator: dto.FilterOperatorEq,
				Table:    "rooms",
			},
			expectedSQL:  "rooms.branch_id = :branch_id",
			expectedArgs: map[string]any{"branch_id": "branch-1"},
		},
		{
			name: "like wraps the value in wildcards",
			filter: dto.Filter{
				Field:    "name",
				Value:    "lakeside",
				Operator: dto.FilterOperatorLike,
			},
			expectedSQL:  "LOWER(name) LIKE LOWER(:name) ",
			expectedArgs: map[string]any{"name": "%lakeside%"},
		},
		{
			name: "greater_eq with a custom arg name",
			filter: dto.Filter{
				ArgName:  "check_in_from",
				Field:    "check_in_date",
				Value:    "2026-09-10",
				Operator: dto.FilterOperatorGreaterEq,
			},
			expectedSQL:  "check_in_date >= :check_in_from",
			expectedArgs: map[string]any{"check_in_from": "2026-09-10"},
		},
		{
			name: "eq built from an absent query parameter emits no clause",
			filter: dto.Filter{
				Field:    "branch_id",
				Value:    "",
				Operator: dto.FilterOperatorEq,
				Table:    "pre_bookings",
			},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
		{
			name: "greater_eq built from an absent query parameter emits no clause",
			filter: dto.Filter{
				ArgName:  "check_in_from",
				Field:    "check_in_date",
				Value:    "",
				Operator: dto.FilterOperatorGreaterEq,
			},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
		{
			name: "in expands slice values",
			filter: dto.Filter{
				Field:    "status",
				Value:    []string{"Confirmed", "Checked-In"},
				Operator: dto.FilterOperatorIn,
			},
			expectedSQL: "status IN (:status_0, :status_1) ",
			expectedArgs: map[string]any{
				"status_0": "Confirmed",
				"status_1": "Checked-In",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.GetWhereClause()

			if sql != tt.expectedSQL {
				t.Errorf("expected clause %q, got %q", tt.expectedSQL, sql)
			}
			if !reflect.DeepEqual(args, tt.expectedArgs) {
				t.Errorf("expected args %v, got %v", tt.expectedArgs, args)
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "branch_id", Value: "branch-1", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "status", Value: "Available", Operator: dto.FilterOperatorEq},
		},
	}

	sql, args := group.GetWhereClause()

	expectedSQL := "(branch_id = :branch_id AND status = :status)"
	if sql != expectedSQL {
		t.Errorf("expected clause %q, got %q", expectedSQL, sql)
	}

	expectedArgs := map[string]any{
		"branch_id": "branch-1",
		"status":    "Available",
	}
	if !reflect.DeepEqual(args, expectedArgs) {
		t.Errorf("expected args %v, got %v", expectedArgs, args)
	}

	empty := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	sql, _ = empty.GetWhereClause()
	if sql != "" {
		t.Errorf("expected empty clause for a group with no filters, got %q", sql)
	}
}

func TestFilterGroup_GetWhereClause_SkipsAbsentParameters(t *testing.T) {
	// The listing handlers build one filter per optional query parameter and
	// pass absent ones through with an empty value. The group must drop those
	// instead of emitting `column = ''`.
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "branch_id", Value: "", Operator: dto.FilterOperatorEq, Table: "pre_bookings"},
			dto.Filter{Field: "status", Value: "Confirmed", Operator: dto.FilterOperatorEq},
		},
	}

	sql, args := group.GetWhereClause()

	expectedSQL := "(status = :status)"
	if sql != expectedSQL {
		t.Errorf("expected clause %q, got %q", expectedSQL, sql)
	}

	expectedArgs := map[string]any{"status": "Confirmed"}
	if !reflect.DeepEqual(args, expectedArgs) {
		t.Errorf("expected args %v, got %v", expectedArgs, args)
	}

	allAbsent := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "branch_id", Value: "", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "check_in_date", Value: "", Operator: dto.FilterOperatorGreaterEq},
			dto.Filter{Field: "check_in_date", Value: "", Operator: dto.FilterOperatorLessEq},
		},
	}

	sql, _ = allAbsent.GetWhereClause()
	if sql != "" {
		t.Errorf("expected the unfiltered listing to carry no constraint, got %q", sql)
	}
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}
