package parsers

import (
	"strings"
	"testing"

	"github.com/username/edvhesabat/backend/src/models"
	"github.com/username/edvhesabat/backend/src/processors"
)

func TestRowsParser_Parse(t *testing.T) {
	parser := NewRowsParser(processors.NewRatePolicy())

	payload := `[
		{"Tarix": "2026-02-20", "Tipi": "sww", "VÖEN": "1111111111", "Net": 1000, "EDV": 180},
		{"Tarix": "21-02-2026", "Tipi": "aww", "VÖEN": "2222222222", "Yekun": "590,00"},
		{"Tarix": "heç vaxt", "Tipi": "aww", "VÖEN": "3333333333", "Net": 5}
	]`

	records, report, err := parser.Parse(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if report.Loaded != 2 || report.BadDate != 1 {
		t.Fatalf("loaded/badDate = %d/%d, want 2/1", report.Loaded, report.BadDate)
	}

	first := records[0]
	if first.Direction != models.DirectionSale {
		t.Errorf("first direction = %s, want SALE", first.Direction)
	}
	// JSON numbers keep their exact decimal value through json.Number.
	if first.NetAmount.StringFixed(2) != "1000.00" || first.TaxAmount.StringFixed(2) != "180.00" {
		t.Errorf("first amounts = %s / %s", first.NetAmount.StringFixed(2), first.TaxAmount.StringFixed(2))
	}

	second := records[1]
	if second.Direction != models.DirectionPurchase {
		t.Errorf("second direction = %s, want PURCHASE", second.Direction)
	}
	if second.TaxAmount.StringFixed(2) != "90.00" {
		t.Errorf("second backed-out tax = %s, want 90.00", second.TaxAmount.StringFixed(2))
	}
}

func TestRowsParser_SparseFirstRow(t *testing.T) {
	parser := NewRowsParser(processors.NewRatePolicy())

	// The first row has no amount column; the union of keys across rows
	// must still resolve it for the second row.
	payload := `[
		{"Tarix": "01-02-2026"},
		{"Tarix": "02-02-2026", "Net": "100"}
	]`

	records, report, err := parser.Parse(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if report.Loaded != 1 || report.BadAmount != 1 {
		t.Fatalf("loaded/badAmount = %d/%d, want 1/1", report.Loaded, report.BadAmount)
	}
	if records[0].NetAmount.StringFixed(2) != "100.00" {
		t.Errorf("net = %s, want 100.00", records[0].NetAmount.StringFixed(2))
	}
}

func TestRowsParser_EmptyArray(t *testing.T) {
	parser := NewRowsParser(processors.NewRatePolicy())

	records, report, err := parser.Parse(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 0 || report.Loaded != 0 {
		t.Errorf("expected empty result, got %d records", len(records))
	}
}

func TestRowsParser_MalformedJSON(t *testing.T) {
	parser := NewRowsParser(processors.NewRatePolicy())

	if _, _, err := parser.Parse(strings.NewReader(`{"not": "an array"}`)); err == nil {
		t.Fatal("expected error for non-array payload")
	}
}
