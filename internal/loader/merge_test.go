package loader

import (
	"math"
	"os"
	"testing"

	"ramadanwatch/internal/csvparse"
	"ramadanwatch/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test", "")
	os.Exit(m.Run())
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"011100103", "11100103"},
		{"11100103", "11100103"},
		{"007", "7"},
		{" 42 ", "42"},
		{"000", "0"},
		{"0", "0"},
		{"", ""},
		{"  ", ""},
		{"A01", "A01"},
	}
	for _, tt := range tests {
		if got := NormalizeID(tt.in); got != tt.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeNumber(t *testing.T) {
	tests := []struct {
		name     string
		in       csvparse.Value
		fallback float64
		want     float64
	}{
		{"number", csvparse.Number(12.5), 0, 12.5},
		{"numeric_text", csvparse.Text("0123"), 0, 123},
		{"empty", csvparse.Text(""), 0, 0},
		{"garbage", csvparse.Text("n/a"), 0, 0},
		{"custom_fallback", csvparse.Text("n/a"), -1, -1},
		{"nan_text", csvparse.Text("NaN"), 0, 0},
		{"inf_text", csvparse.Text("Inf"), 0, 0},
		{"inf_number", csvparse.Number(math.Inf(1)), 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeNumber(tt.in, tt.fallback); got != tt.want {
				t.Errorf("SafeNumber(%+v, %v) = %v, want %v", tt.in, tt.fallback, got, tt.want)
			}
		})
	}

	if got := SafeInt(csvparse.Number(3.9), 0); got != 3 {
		t.Errorf("SafeInt should truncate, got %d", got)
	}
	if got := SafeInt(csvparse.Text("x"), 5); got != 5 {
		t.Errorf("SafeInt fallback, got %d", got)
	}
}

func TestBuildProducts(t *testing.T) {
	products := csvparse.Parse("id,name,icon,color,reference_price,display_order,weight\n" +
		"0011,Rice,rice,#fff,10,2,1kg\n" +
		"0012,Sugar,sugar,#000,bad,1,\n" +
		"0013,Oil,oil,#aaa,20,2,\n" +
		",NoID,x,x,1,0,\n" +
		"14,Dates,dates,#bbb,30,3,\n")
	prices := csvparse.Parse("id,product_id,week_number,price,week_date\n" +
		"1,11,1,11,2026-02-18\n" +
		"2,011,2,12,2026-02-25\n" +
		"3,11,2,12.5,2026-02-25\n" +
		"4,99,1,5,\n" +
		"5,12,0,5,\n" +
		"6,13,1,oops,\n" +
		"7,11,2.5,99,\n")
	names := map[string]string{"11": "أرز"}

	got, stats := BuildProducts(products, prices, names)

	t.Run("stable_sort_by_display_order", func(t *testing.T) {
		wantIDs := []string{"12", "11", "13", "14"}
		if len(got) != len(wantIDs) {
			t.Fatalf("expected %d products, got %d", len(wantIDs), len(got))
		}
		for i, id := range wantIDs {
			if got[i].ID != id {
				t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
			}
		}
	})

	t.Run("name_override", func(t *testing.T) {
		if got[1].Name != "أرز" {
			t.Errorf("expected override name, got %q", got[1].Name)
		}
		if got[2].Name != "Oil" {
			t.Errorf("expected CSV name, got %q", got[2].Name)
		}
	})

	t.Run("lenient_numbers", func(t *testing.T) {
		if got[0].ReferencePrice != 0 {
			t.Errorf("bad reference price should be 0, got %v", got[0].ReferencePrice)
		}
		if len(got[2].Prices) != 1 || got[2].Prices[0].Price != 0 {
			t.Errorf("bad price should be 0, got %+v", got[2].Prices)
		}
	})

	t.Run("duplicate_week_last_wins", func(t *testing.T) {
		rice := got[1]
		if len(rice.Prices) != 2 {
			t.Fatalf("expected 2 observations, got %+v", rice.Prices)
		}
		if rice.Prices[1].WeekNumber != 2 || rice.Prices[1].Price != 12.5 {
			t.Errorf("expected week 2 price 12.5 untouched by week 2.5, got %+v", rice.Prices[1])
		}
		if rice.Prices[0].WeekDate != "2026-02-18" {
			t.Errorf("expected week date to be kept, got %q", rice.Prices[0].WeekDate)
		}
	})

	t.Run("product_without_prices", func(t *testing.T) {
		if got[3].Prices == nil || len(got[3].Prices) != 0 {
			t.Errorf("expected empty non-nil price list, got %#v", got[3].Prices)
		}
	})

	t.Run("stats", func(t *testing.T) {
		want := MergeStats{
			Products:            4,
			Observations:        3,
			SkippedProducts:     1,
			SkippedObservations: 2,
			Orphans:             1,
			Duplicates:          1,
		}
		if stats != want {
			t.Errorf("stats = %+v, want %+v", stats, want)
		}
	})
}

func TestParseNameOverrides(t *testing.T) {
	recs := csvparse.Parse("id,name\n0011,أرز مصري\n12,\n,Nameless\n")
	names := ParseNameOverrides(recs)
	if len(names) != 1 || names["11"] != "أرز مصري" {
		t.Errorf("unexpected overrides %v", names)
	}
}
