package shared_test

import (
	"tablebook/shared"
	"tablebook/shared/constant"
	"tablebook/shared/dto"
	"testing"
)

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		FirstName string `db:"first_name"`
		LastName  string `db:"last_name"`
		People    int    `db:"people"`
		Ignored   string
	}

	req := updateRequest{
		FirstName: "Rick",
		People:    4,
		Ignored:   "nope",
	}

	fields := shared.TransformFields(req)

	if fields["first_name"] != "Rick" {
		t.Errorf("expected first_name to be 'Rick', got %v", fields["first_name"])
	}

	if fields["people"] != 4 {
		t.Errorf("expected people to be 4, got %v", fields["people"])
	}

	if _, ok := fields["last_name"]; ok {
		t.Error("expected zero-valued last_name to be omitted")
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be stamped")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("some-id", "id", "reservations")

	where, args := group.GetWhereClause()

	if where != "(reservations.id = :id)" {
		t.Errorf("unexpected where clause: %q", where)
	}

	if args["id"] != "some-id" {
		t.Errorf("expected id arg to be 'some-id', got %v", args["id"])
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"800-555-0100", "8005550100"},
		{"(312) 555 0199", "3125550199"},
		{"no digits", ""},
		{"1234567890", "1234567890"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := shared.DigitsOnly(tt.input); got != tt.expected {
			t.Errorf("DigitsOnly(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildCacheKey(t *testing.T) {
	if key := shared.BuildCacheKey("reservation", "get", "abc"); key != "reservation:get:abc" {
		t.Errorf("unexpected cache key: %q", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{SortBy: "reservation_time", SortDir: dto.SortDirAsc}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "reservation_date", Value: "2026-09-01", Operator: dto.FilterOperatorEq},
		},
	}

	first := shared.BuildCacheKeyWithQuery("reservation:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("reservation:gets", params, filter)

	if first != second {
		t.Error("expected cache keys for identical queries to match")
	}

	other := shared.BuildCacheKeyWithQuery("reservation:gets", params, dto.FilterGroup{})
	if first == other {
		t.Error("expected cache keys for different filters to differ")
	}
}
