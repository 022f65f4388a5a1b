package export

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"ramadanwatch/internal/csvparse"
	"ramadanwatch/internal/pricing"
)

func testProducts() []pricing.Product {
	return []pricing.Product{
		{
			ID: "7", Name: "Test", ReferencePrice: 10,
			Prices: []pricing.WeeklyPrice{
				{ProductID: "7", WeekNumber: 1, Price: 12},
				{ProductID: "7", WeekNumber: 2, Price: 9},
			},
		},
		{
			ID: "8", Name: "Dates, 1kg", ReferencePrice: 0,
			Prices: []pricing.WeeklyPrice{
				{ProductID: "8", WeekNumber: 1, Price: 10.005},
			},
		},
	}
}

func TestBuildRows_Golden(t *testing.T) {
	tests := []struct {
		name string
		week int
		want []Row
	}{
		{
			name: "week_one_has_blank_previous_percent",
			week: 1,
			want: []Row{
				{"Test", "1", "12.00", "10.00", "20.0", "2.00", "0.00", "", "0.00"},
				{"Dates, 1kg", "1", "10.01", "0.00", "0.0", "10.01", "0.00", "", "0.00"},
			},
		},
		{
			name: "week_two_compares_with_week_one",
			week: 2,
			want: []Row{
				{"Test", "2", "9.00", "10.00", "-10.0", "-1.00", "12.00", "-25.0", "-3.00"},
				{"Dates, 1kg", "2", "0.00", "0.00", "0.0", "0.00", "10.01", "-100.0", "-10.01"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRows(testProducts(), tt.week)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildRows week %d\ngot:  %q\nwant: %q", tt.week, got, tt.want)
			}
		})
	}
}

func TestBuildRows_RoundsCentsBeforeComparing(t *testing.T) {
	single := func(ref float64, prices ...float64) []pricing.Product {
		p := pricing.Product{ID: "1", Name: "x", ReferencePrice: ref}
		for i, v := range prices {
			p.Prices = append(p.Prices, pricing.WeeklyPrice{ProductID: "1", WeekNumber: i + 1, Price: v})
		}
		return []pricing.Product{p}
	}

	tests := []struct {
		name     string
		products []pricing.Product
		week     int
		want     Row
	}{
		{"half_cent_up_to_reference", single(10, 9.995), 1, Row{"x", "1", "10.00", "10.00", "0.0", "0.00", "0.00", "", "0.00"}},
		{"one_point_oh_oh_five", single(1, 1.005), 1, Row{"x", "1", "1.01", "1.00", "1.0", "0.01", "0.00", "", "0.00"}},
		{"two_point_six_seven_five", single(2.5, 2.675), 1, Row{"x", "1", "2.68", "2.50", "7.2", "0.18", "0.00", "", "0.00"}},
		{"zero_point_one_two_five", single(0, 0.125), 1, Row{"x", "1", "0.13", "0.00", "0.0", "0.13", "0.00", "", "0.00"}},
		{"tiny_negative_delta_is_unsigned_zero", single(10.001, 10), 1, Row{"x", "1", "10.00", "10.00", "0.0", "0.00", "0.00", "", "0.00"}},
		{"previous_week_uses_rounded_cents", single(5, 5, 4.995), 2, Row{"x", "2", "5.00", "5.00", "0.0", "0.00", "5.00", "0.0", "0.00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRows(tt.products, tt.week)
			if len(got) != 1 || !reflect.DeepEqual(got[0], tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildRows_RowWidthMatchesHeaders(t *testing.T) {
	for _, row := range BuildRows(testProducts(), 2) {
		if len(row) != len(Headers()) {
			t.Errorf("row has %d cells, headers have %d", len(row), len(Headers()))
		}
	}
}

func TestHeaders_ReturnsCopy(t *testing.T) {
	h := Headers()
	h[0] = "changed"
	if Headers()[0] == "changed" {
		t.Error("Headers must not expose the shared slice")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(3, "xlsx"); got != "ramadan-prices-week-3.xlsx" {
		t.Errorf("unexpected file name %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatXLSX, true},
		{"xlsx", FormatXLSX, true},
		{"csv", FormatCSV, true},
		{"pdf", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	rows := BuildRows(testProducts(), 2)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Fatalf("expected single sheet %q, got %v", SheetName, sheets)
	}

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0], Headers()) {
		t.Errorf("header mismatch: %q", got[0])
	}
	if !reflect.DeepEqual(got[1], []string(rows[0])) {
		t.Errorf("row mismatch: got %q, want %q", got[1], rows[0])
	}
}

func TestWriteCSV(t *testing.T) {
	rows := BuildRows(testProducts(), 1)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\ufeff") {
		t.Fatal("expected UTF-8 byte-order mark")
	}

	parsed := csvparse.ParseRows(strings.TrimPrefix(out, "\ufeff"))
	if len(parsed) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(parsed))
	}
	if !reflect.DeepEqual(parsed[0], Headers()) {
		t.Errorf("header mismatch: %q", parsed[0])
	}
	if parsed[2][0] != "Dates, 1kg" {
		t.Errorf("embedded comma not preserved: %q", parsed[2][0])
	}
	if parsed[1][7] != "" {
		t.Errorf("expected blank previous percent at week 1, got %q", parsed[1][7])
	}
}
