package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMoney_MarshalJSON_TwoFractionDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"90", "90.00"},
		{"90.5", "90.50"},
		{"0", "0.00"},
		{"-12.3", "-12.30"},
		{"1234.567", "1234.57"},
	}

	for _, tt := range tests {
		m := NewMoney(decimal.RequireFromString(tt.in))
		data, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", tt.in, err)
		}
		if string(data) != tt.want {
			t.Errorf("Marshal(%s) = %s, want %s (raw number, two digits)", tt.in, data, tt.want)
		}
	}
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`180.00`), &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !m.Equal(decimal.RequireFromString("180")) {
		t.Errorf("got %s, want 180", m)
	}

	// Quoted values are accepted for interop with string-typed sources.
	if err := json.Unmarshal([]byte(`"90.50"`), &m); err != nil {
		t.Fatalf("Unmarshal quoted: %v", err)
	}
	if m.StringFixed(2) != "90.50" {
		t.Errorf("got %s, want 90.50", m.StringFixed(2))
	}

	if err := json.Unmarshal([]byte(`"çox"`), &m); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString(" 500.25 ")
	if err != nil {
		t.Fatalf("MoneyFromString: %v", err)
	}
	if m.StringFixed(2) != "500.25" {
		t.Errorf("got %s, want 500.25", m.StringFixed(2))
	}

	if _, err := MoneyFromString("yox"); err == nil {
		t.Error("expected error for invalid value")
	}
}

func TestEDVRecord_AmountInvariant(t *testing.T) {
	date := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)

	r := NewEDVRecord("AA-1", date, DirectionSale, "1234567890", "Alfa MMC", "AA", "1",
		decimal.RequireFromString("1000"), decimal.RequireFromString("180"), 18, "")

	if r.GrossAmount.StringFixed(2) != "1180.00" {
		t.Errorf("gross = %s, want 1180.00 (recomputed at construction)", r.GrossAmount.StringFixed(2))
	}
	if err := r.CheckAmountInvariant(); err != nil {
		t.Errorf("invariant on fresh record: %v", err)
	}

	// A drifted gross must be caught.
	r.GrossAmount = NewMoney(decimal.RequireFromString("1180.01"))
	if err := r.CheckAmountInvariant(); err == nil {
		t.Error("expected invariant violation for drifted gross")
	}
}

func TestSkipReport(t *testing.T) {
	var report SkipReport
	report.Add(SkipBadDate)
	report.Add(SkipBadDate)
	report.Add(SkipBadAmount)
	report.Add(SkipMissingField)
	report.Loaded = 10

	if report.BadDate != 2 || report.BadAmount != 1 || report.MissingField != 1 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if report.Skipped() != 4 {
		t.Errorf("Skipped() = %d, want 4", report.Skipped())
	}
}
