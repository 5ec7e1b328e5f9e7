// Package render produces human-readable report text. It consumes the
// computed report structures and never does any arithmetic of its own.
package render

import (
	"fmt"
	"strings"

	"github.com/username/edvhesabat/backend/src/models"
)

// Declaration renders a monthly VAT declaration as boxed plain text.
// An empty VÖEN prints a fill-in placeholder.
func Declaration(report *models.MonthlyReport, voen string) string {
	if voen == "" {
		voen = "_________"
	}

	sales := report.Totals[models.DirectionSale]
	purchases := report.Totals[models.DirectionPurchase]
	result := report.Result

	var b strings.Builder
	b.WriteString("╔════════════════════════════════════════════════════════════╗\n")
	b.WriteString("║                     ƏDV BƏYANNAMƏSİ                        ║\n")
	b.WriteString("╠════════════════════════════════════════════════════════════╣\n")
	fmt.Fprintf(&b, "  Dövr: %02d/%d     VÖEN: %s\n", report.Month, report.Year, voen)
	b.WriteString("╠════════════════════════════════════════════════════════════╣\n\n")

	b.WriteString("SATIŞ (ÇIXIŞ)\n")
	writeTotals(&b, sales)

	b.WriteString("\nALIŞ (GİRİŞ) - Əvəzləşdirmə\n")
	writeTotals(&b, purchases)

	b.WriteString("\nNET HESAB\n")
	fmt.Fprintf(&b, "  Satış ƏDV:        %12s AZN\n", result.SalesTax.StringFixed(2))
	fmt.Fprintf(&b, "  Alış ƏDV:         %12s AZN\n", result.PurchaseTax.StringFixed(2))
	fmt.Fprintf(&b, "  Net öhdəlik:      %12s AZN\n", result.NetObligation.StringFixed(2))
	b.WriteString("  ────────────────────────────────────\n")
	fmt.Fprintf(&b, "  ÖDƏNƏCƏK:         %12s AZN\n", result.Payable.StringFixed(2))
	fmt.Fprintf(&b, "  İADƏ EDİLƏCƏK:    %12s AZN\n", result.Refundable.StringFixed(2))

	if result.StateBudgetShare != nil && result.TaxpayerRefundShare != nil {
		b.WriteString("\nBÖLGÜ\n")
		fmt.Fprintf(&b, "  Dövlət büdcəsi:   %12s AZN\n", result.StateBudgetShare.StringFixed(2))
		fmt.Fprintf(&b, "  Geri qaytarma:    %12s AZN\n", result.TaxpayerRefundShare.StringFixed(2))
	}

	b.WriteString("\n╚════════════════════════════════════════════════════════════╝")
	return b.String()
}

func writeTotals(b *strings.Builder, t models.PeriodTotals) {
	fmt.Fprintf(b, "  ƏDV-siz:     %15s AZN\n", t.NetTotal.StringFixed(2))
	fmt.Fprintf(b, "  ƏDV:         %15s AZN\n", t.TaxTotal.StringFixed(2))
	fmt.Fprintf(b, "  Yekun:       %15s AZN\n", t.GrossTotal.StringFixed(2))
	fmt.Fprintf(b, "  Qeyd:        %15d ədəd\n", t.Count)
}
