package processors

import (
	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/models"
)

// PeriodAggregator folds a batch of records into per-direction totals for a
// period. It is stateless: the same input always yields the same output,
// regardless of record order, so reports can be recomputed on every query.
type PeriodAggregator struct{}

func NewPeriodAggregator() *PeriodAggregator {
	return &PeriodAggregator{}
}

// Aggregate filters records to the closed period range and sums
// net/tax/gross grouped by direction. Both directions are always present in
// the result; an empty group carries zero totals and count 0.
//
// Summation is exact decimal addition of amounts that were each rounded
// once at construction time; no re-rounding happens here, so errors cannot
// compound across line items.
func (a *PeriodAggregator) Aggregate(records []models.EDVRecord, period models.Period) map[models.Direction]models.PeriodTotals {
	sums := map[models.Direction]*runningTotals{
		models.DirectionPurchase: newRunningTotals(),
		models.DirectionSale:     newRunningTotals(),
	}

	for _, r := range records {
		if !period.Contains(r.Date) {
			continue
		}
		t, ok := sums[r.Direction]
		if !ok {
			// Direction inference is total, so only the two known groups exist.
			continue
		}
		t.net = t.net.Add(r.NetAmount.Decimal)
		t.tax = t.tax.Add(r.TaxAmount.Decimal)
		t.gross = t.gross.Add(r.GrossAmount.Decimal)
		t.count++
	}

	result := make(map[models.Direction]models.PeriodTotals, len(sums))
	for dir, t := range sums {
		result[dir] = models.PeriodTotals{
			NetTotal:   models.NewMoney(t.net),
			TaxTotal:   models.NewMoney(t.tax),
			GrossTotal: models.NewMoney(t.gross),
			Count:      t.count,
		}
	}
	return result
}

type runningTotals struct {
	net, tax, gross decimal.Decimal
	count           int
}

func newRunningTotals() *runningTotals {
	return &runningTotals{net: decimal.Zero, tax: decimal.Zero, gross: decimal.Zero}
}
