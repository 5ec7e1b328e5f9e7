package processors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/logger"
	"github.com/username/edvhesabat/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func TestTaxOnTop(t *testing.T) {
	tests := []struct {
		name string
		net  string
		rate int
		want string
	}{
		{"standard rate on 1000", "1000", 18, "180.00"},
		{"standard rate on 500", "500", 18, "90.00"},
		{"reduced rate on 200", "200", 10, "20.00"},
		{"zero rate", "1000", 0, "0.00"},
		{"rounding up at half", "0.25", 18, "0.05"},   // 0.045 -> 0.05
		{"awkward fraction", "99.99", 18, "18.00"},    // 17.9982
		{"small amount", "0.01", 18, "0.00"},          // 0.0018
		{"large amount", "123456.78", 18, "22222.22"}, // 22222.2204
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := decimal.RequireFromString(tt.net)
			got := TaxOnTop(net, tt.rate)
			if got.StringFixed(2) != tt.want {
				t.Errorf("TaxOnTop(%s, %d) = %s, want %s", tt.net, tt.rate, got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestTaxBackedOut(t *testing.T) {
	tests := []struct {
		name  string
		gross string
		rate  int
		want  string
	}{
		{"standard rate from 590", "590", 18, "90.00"},
		{"standard rate from 1180", "1180", 18, "180.00"},
		{"standard rate from 118", "118", 18, "18.00"},
		{"reduced rate from 110", "110", 10, "10.00"},
		{"zero rate", "590", 0, "0.00"},
		{"awkward gross", "99.99", 18, "15.25"}, // 99.99*18/118 = 15.2527...
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross := decimal.RequireFromString(tt.gross)
			got := TaxBackedOut(gross, tt.rate)
			if got.StringFixed(2) != tt.want {
				t.Errorf("TaxBackedOut(%s, %d) = %s, want %s", tt.gross, tt.rate, got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestNetFromGross(t *testing.T) {
	gross := decimal.RequireFromString("590")
	net := NetFromGross(gross, 18)
	if net.StringFixed(2) != "500.00" {
		t.Errorf("NetFromGross(590, 18) = %s, want 500.00", net.StringFixed(2))
	}
	// Net plus backed-out tax always reassembles the gross exactly.
	tax := TaxBackedOut(gross, 18)
	if !net.Add(tax).Equal(gross) {
		t.Errorf("net %s + tax %s != gross %s", net, tax, gross)
	}
}

// Applying the formulas in sequence must round-trip within one minor unit:
// backing the tax out of net+tax recovers the tax added on top, give or take
// the rounding direction.
func TestRateFormulas_RoundTrip(t *testing.T) {
	amounts := []string{"0.01", "1", "10.50", "99.99", "500", "1234.56", "100000.01"}
	rates := []int{10, 18}
	tolerance := decimal.RequireFromString("0.01")

	for _, a := range amounts {
		for _, r := range rates {
			net := decimal.RequireFromString(a)
			taxUp := TaxOnTop(net, r)
			gross := net.Add(taxUp)
			taxBack := TaxBackedOut(gross, r)

			diff := taxUp.Sub(taxBack).Abs()
			if diff.GreaterThan(tolerance) {
				t.Errorf("round trip for net=%s rate=%d: tax_on_top=%s tax_backed_out=%s diff=%s",
					a, r, taxUp, taxBack, diff)
			}
		}
	}
}

func TestRatePolicy_RateFor(t *testing.T) {
	policy := NewRatePolicy()

	tests := []struct {
		name     string
		year     int
		category string
		want     int
	}{
		{"standard 2026", 2026, RateStandard, 18},
		{"reduced 2026", 2026, RateReduced, 10},
		{"zero 2026", 2026, RateZero, 0},
		{"unknown category falls back to standard", 2026, "luxury", 18},
		{"missing year falls back to latest", 2030, RateStandard, 18},
		{"missing year unknown category", 1999, "whatever", 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.RateFor(tt.year, tt.category); got != tt.want {
				t.Errorf("RateFor(%d, %q) = %d, want %d", tt.year, tt.category, got, tt.want)
			}
		})
	}
}

func TestRatePolicy_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.json")
	content := `{"rates": {"2027": {"standard": 20, "reduced": 8, "zero": 0}}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	policy := NewRatePolicy()
	if err := policy.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if got := policy.RateFor(2027, RateStandard); got != 20 {
		t.Errorf("standard rate after load = %d, want 20", got)
	}
	if got := policy.RateFor(2027, RateReduced); got != 8 {
		t.Errorf("reduced rate after load = %d, want 8", got)
	}
}

func TestRatePolicy_LoadFromFile_MissingFileKeepsDefaults(t *testing.T) {
	policy := NewRatePolicy()
	if err := policy.LoadFromFile("/nonexistent/rates.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if got := policy.RateFor(2026, RateStandard); got != 18 {
		t.Errorf("defaults lost after failed load: standard = %d, want 18", got)
	}
}

func TestRatePolicy_InferDirection(t *testing.T) {
	policy := NewRatePolicy()

	tests := []struct {
		name      string
		rawType   string
		rawStatus string
		want      models.Direction
	}{
		{"sale marker in type", "SWW", "", models.DirectionSale},
		{"sale marker lowercase", "sww-satış qaiməsi", "", models.DirectionSale},
		{"satis transliterated", "Satis", "", models.DirectionSale},
		{"approval marker in status alone", "", "Təsdiq edilib", models.DirectionSale},
		{"approval marker transliterated", "", "tesdiq olunub", models.DirectionSale},
		{"both signals", "sww", "təsdiq edilib", models.DirectionSale},
		{"neither signal defaults to purchase", "AWW", "Gözləmədə", models.DirectionPurchase},
		{"empty fields default to purchase", "", "", models.DirectionPurchase},
		{"unrelated status", "alış", "ləğv edilib", models.DirectionPurchase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.InferDirection(tt.rawType, tt.rawStatus); got != tt.want {
				t.Errorf("InferDirection(%q, %q) = %s, want %s", tt.rawType, tt.rawStatus, got, tt.want)
			}
		})
	}
}
