package shared_test

import (
	"strings"
	"testing"

	"bookable/shared"
	"bookable/shared/constant"
	"bookable/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "invalid", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
				return
			}

			if result == nil || *result != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, result)
			}
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
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "with remainder", total: 101, limit: 10, expected: 11},
		{name: "single page", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Title  string `db:"post_title"`
		Status string `db:"post_status"`
		Order  int    `db:"menu_order"`
	}

	fields := shared.TransformFields(update{Title: "Massage", Status: "publish"}, "admin")

	if fields["post_title"] != "Massage" {
		t.Errorf("expected post_title to be set, got %v", fields["post_title"])
	}
	if fields["post_status"] != "publish" {
		t.Errorf("expected post_status to be set, got %v", fields["post_status"])
	}
	if _, ok := fields["menu_order"]; ok {
		t.Error("expected zero-valued menu_order to be omitted")
	}
	if fields[constant.FieldModifiedBy] != "admin" {
		t.Errorf("expected modified_by to be admin, got %v", fields[constant.FieldModifiedBy])
	}
	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("abc", "id", "records")

	where, args := group.GetWhereClause()

	if !strings.Contains(where, "records.id = :id") {
		t.Errorf("unexpected where clause: %q", where)
	}
	if args["id"] != "abc" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("service"); got != "service" {
		t.Errorf("expected bare prefix, got %q", got)
	}

	if got := shared.BuildCacheKey("service", "123"); got != "service:123" {
		t.Errorf("expected service:123, got %q", got)
	}

	if got := shared.BuildCacheKey("rate", "1.2.3.4", "agent"); got != "rate:1.2.3.4:agent" {
		t.Errorf("expected rate:1.2.3.4:agent, got %q", got)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	reqA := dto.QueryParams{Page: 1, Limit: 10}
	reqB := dto.QueryParams{Page: 2, Limit: 10}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "post_type", Operator: dto.FilterOperatorEq, Value: "download"},
		},
	}

	keyA := shared.BuildCacheKeyWithQuery("services", reqA, filter)
	keyB := shared.BuildCacheKeyWithQuery("services", reqB, filter)
	keyARepeat := shared.BuildCacheKeyWithQuery("services", reqA, filter)

	if !strings.HasPrefix(keyA, "services:") {
		t.Errorf("expected key to keep prefix, got %q", keyA)
	}
	if keyA == keyB {
		t.Error("expected different queries to produce different keys")
	}
	if keyA != keyARepeat {
		t.Error("expected identical queries to produce identical keys")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
