package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"bookable/shared/constant"
	"bookable/shared/dto"
	"bookable/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
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

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
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
				"sort_by":  "post_title",
				"sort_dir": "ASC",
				"search":   "yoga",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "post_title",
				SortDir: "ASC",
				Search:  "yoga",
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
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
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
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with lowercase sort direction",
			queryParams: map[string]string{
				"sort_dir": "desc",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "DESC",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseURL := "http://example.com/test"
			u, err := url.Parse(baseURL)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

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
			if queryParams.Search != tt.expected.Search {
				t.Errorf("expected Search to be %s, got %s", tt.expected.Search, queryParams.Search)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	t.Run("not in over a slice binds each element", func(t *testing.T) {
		filter := dto.Filter{
			Field:    "id",
			Operator: dto.FilterOperatorNotIn,
			Value:    []string{"a", "b"},
		}

		where, args := filter.GetWhereClause()

		if where != "id NOT IN (:id_0, :id_1) " {
			t.Errorf("unexpected where clause: %q", where)
		}
		if args["id_0"] != "a" || args["id_1"] != "b" {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("plain query carries its own args", func(t *testing.T) {
		filter := dto.Filter{
			Operator: dto.FilterPlainQuery,
			Value:    "meta_key = :meta_key AND meta_value = :meta_value",
			Args: map[string]any{
				"meta_key":   "bookings_enabled",
				"meta_value": "1",
			},
		}

		where, args := filter.GetWhereClause()

		if where != "(meta_key = :meta_key AND meta_value = :meta_value)" {
			t.Errorf("unexpected where clause: %q", where)
		}
		if args["meta_key"] != "bookings_enabled" || args["meta_value"] != "1" {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("groups join with their operator", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "post_type", Operator: dto.FilterOperatorEq, Value: "download"},
				dto.Filter{Field: "post_status", Operator: dto.FilterOperatorNotEq, Value: "trash"},
			},
		}

		where, args := group.GetWhereClause()

		if where != "(post_type = :post_type AND post_status != :post_status)" {
			t.Errorf("unexpected where clause: %q", where)
		}
		if args["post_type"] != "download" || args["post_status"] != "trash" {
			t.Errorf("unexpected args: %v", args)
		}
	})
}
