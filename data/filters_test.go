package data

import (
	"testing"

	"github.com/emzola/watchlist/internal/validator"
)

func TestSortColumnAndDirection(t *testing.T) {
	f := Filters{Sort: "-id", SortSafeList: []string{"id", "-id"}}

	if got := f.SortColumn(); got != "id" {
		t.Errorf("want sort column id; got %s", got)
	}
	if got := f.SortDirection(); got != "DESC" {
		t.Errorf("want sort direction DESC; got %s", got)
	}
}

func TestSortColumnPanicsOnUnsafeValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsafe sort value")
		}
	}()
	f := Filters{Sort: "id; DROP TABLE reviews", SortSafeList: []string{"id"}}
	f.SortColumn()
}

func TestValidateFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		valid   bool
	}{
		{"valid", Filters{Page: 1, PageSize: 20, Sort: "id", SortSafeList: []string{"id"}}, true},
		{"zero page", Filters{Page: 0, PageSize: 20, Sort: "id", SortSafeList: []string{"id"}}, false},
		{"oversized page size", Filters{Page: 1, PageSize: 500, Sort: "id", SortSafeList: []string{"id"}}, false},
		{"unknown sort", Filters{Page: 1, PageSize: 20, Sort: "rating", SortSafeList: []string{"id"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateFilters(v, tt.filters)
			if v.Valid() != tt.valid {
				t.Errorf("want valid=%t; got errors %v", tt.valid, v.Errors)
			}
		})
	}
}

func TestCalculateMetadata(t *testing.T) {
	metadata := CalculateMetadata(95, 2, 20)

	if metadata.LastPage != 5 {
		t.Errorf("want last page 5; got %d", metadata.LastPage)
	}
	if metadata.TotalRecords != 95 {
		t.Errorf("want total records 95; got %d", metadata.TotalRecords)
	}
}

func TestCalculateMetadataEmptyResult(t *testing.T) {
	if got := CalculateMetadata(0, 1, 20); got != (Metadata{}) {
		t.Errorf("want zero metadata for empty result; got %+v", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	token := Cursor{ID: 42}.Encode()

	cursor, err := DecodeCursor(token)
	if err != nil {
		t.Fatal(err)
	}
	if cursor == nil || cursor.ID != 42 {
		t.Errorf("want cursor id 42; got %+v", cursor)
	}
}

func TestDecodeCursorEmptyTokenMeansFirstPage(t *testing.T) {
	cursor, err := DecodeCursor("")
	if err != nil {
		t.Fatal(err)
	}
	if cursor != nil {
		t.Errorf("want nil cursor; got %+v", cursor)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	if _, err := DecodeCursor("not-base64!!"); err == nil {
		t.Error("expected error for malformed cursor")
	}
}
