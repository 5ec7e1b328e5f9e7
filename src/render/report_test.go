package render

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/models"
)

func money(s string) models.Money {
	return models.NewMoney(decimal.RequireFromString(s))
}

func sampleReport() *models.MonthlyReport {
	period, _ := models.MonthPeriod(2026, 2)
	return &models.MonthlyReport{
		Year:  2026,
		Month: 2,
		Totals: map[models.Direction]models.PeriodTotals{
			models.DirectionSale: {
				NetTotal: money("1000"), TaxTotal: money("180"), GrossTotal: money("1180"), Count: 1,
			},
			models.DirectionPurchase: {
				NetTotal: money("500"), TaxTotal: money("90"), GrossTotal: money("590"), Count: 1,
			},
		},
		Result: models.ReconciliationResult{
			Period:        period,
			SalesTax:      money("180"),
			PurchaseTax:   money("90"),
			NetObligation: money("90"),
			Payable:       money("90"),
			Refundable:    money("0"),
		},
	}
}

func TestDeclaration(t *testing.T) {
	text := Declaration(sampleReport(), "1234567890")

	for _, want := range []string{
		"ƏDV BƏYANNAMƏSİ",
		"Dövr: 02/2026",
		"VÖEN: 1234567890",
		"SATIŞ (ÇIXIŞ)",
		"ALIŞ (GİRİŞ)",
		"NET HESAB",
		"1000.00 AZN",
		"180.00 AZN",
		"ÖDƏNƏCƏK:",
		"İADƏ EDİLƏCƏK:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("declaration missing %q\n%s", want, text)
		}
	}

	if strings.Contains(text, "BÖLGÜ") {
		t.Error("split section rendered without split shares")
	}
}

func TestDeclaration_WithSplitShares(t *testing.T) {
	report := sampleReport()
	state := money("18")
	refund := money("72")
	report.Result.StateBudgetShare = &state
	report.Result.TaxpayerRefundShare = &refund

	text := Declaration(report, "")

	if !strings.Contains(text, "VÖEN: _________") {
		t.Error("empty VÖEN placeholder missing")
	}
	for _, want := range []string{"BÖLGÜ", "Dövlət büdcəsi:", "18.00 AZN", "72.00 AZN"} {
		if !strings.Contains(text, want) {
			t.Errorf("declaration missing %q", want)
		}
	}
}
