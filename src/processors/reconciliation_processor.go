package processors

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/models"
)

// RefundSplitPolicy configures the partial-refund split of a payable
// obligation: the state budget keeps StatePercent of it, the remainder is
// refundable to the taxpayer. The historical split is 20/80.
type RefundSplitPolicy struct {
	StatePercent int `json:"state_percent"`
}

// ReconciliationProcessor turns per-direction period totals into the final
// obligation decision. Every call is a pure function of its inputs.
type ReconciliationProcessor struct {
	aggregator *PeriodAggregator
	split      *RefundSplitPolicy // nil disables the split
}

func NewReconciliationProcessor(split *RefundSplitPolicy) *ReconciliationProcessor {
	return &ReconciliationProcessor{
		aggregator: NewPeriodAggregator(),
		split:      split,
	}
}

// Reconcile derives the net obligation for one period from its totals:
// net = sales tax - purchase tax, payable = max(0, net),
// refundable = max(0, -net). When a split policy is configured it applies
// to the payable amount only.
func (p *ReconciliationProcessor) Reconcile(totals map[models.Direction]models.PeriodTotals, period models.Period) (models.ReconciliationResult, error) {
	salesTax := totals[models.DirectionSale].TaxTotal.Decimal
	purchaseTax := totals[models.DirectionPurchase].TaxTotal.Decimal

	net := salesTax.Sub(purchaseTax)
	payable := decimal.Max(decimal.Zero, net)
	refundable := decimal.Max(decimal.Zero, net.Neg())

	result := models.ReconciliationResult{
		Period:        period,
		SalesTax:      models.NewMoney(salesTax),
		PurchaseTax:   models.NewMoney(purchaseTax),
		NetObligation: models.NewMoney(net),
		Payable:       models.NewMoney(payable),
		Refundable:    models.NewMoney(refundable),
	}

	if p.split != nil && p.split.StatePercent > 0 {
		state, refund := splitPayable(payable, p.split.StatePercent)
		if !state.Add(refund).Equal(payable) {
			// A leaking split is a programming error in the share
			// allocation, not a recoverable condition.
			return models.ReconciliationResult{}, fmt.Errorf(
				"rounding invariant violated: split shares %s + %s != payable %s",
				state, refund, payable)
		}
		stateShare := models.NewMoney(state)
		refundShare := models.NewMoney(refund)
		result.StateBudgetShare = &stateShare
		result.TaxpayerRefundShare = &refundShare
	}

	return result, nil
}

// ReconcileYear produces the 12 monthly results plus a 13th aggregate whose
// net obligation is the sum of the monthly values. Per-month figures are
// retained for audit; netting across months happens only in the aggregate.
func (p *ReconciliationProcessor) ReconcileYear(records []models.EDVRecord, year int) (models.YearlyReport, error) {
	yearPeriod, err := models.YearPeriod(year)
	if err != nil {
		return models.YearlyReport{}, err
	}

	report := models.YearlyReport{
		Year:    year,
		Monthly: make([]models.ReconciliationResult, 0, 12),
	}

	yearlyNet := decimal.Zero
	yearlySales := decimal.Zero
	yearlyPurchase := decimal.Zero

	for month := 1; month <= 12; month++ {
		period, err := models.MonthPeriod(year, month)
		if err != nil {
			return models.YearlyReport{}, err
		}
		totals := p.aggregator.Aggregate(records, period)
		result, err := p.Reconcile(totals, period)
		if err != nil {
			return models.YearlyReport{}, err
		}
		report.Monthly = append(report.Monthly, result)

		yearlyNet = yearlyNet.Add(result.NetObligation.Decimal)
		yearlySales = yearlySales.Add(result.SalesTax.Decimal)
		yearlyPurchase = yearlyPurchase.Add(result.PurchaseTax.Decimal)
	}

	aggregate := models.ReconciliationResult{
		Period:        yearPeriod,
		SalesTax:      models.NewMoney(yearlySales),
		PurchaseTax:   models.NewMoney(yearlyPurchase),
		NetObligation: models.NewMoney(yearlyNet),
		Payable:       models.NewMoney(decimal.Max(decimal.Zero, yearlyNet)),
		Refundable:    models.NewMoney(decimal.Max(decimal.Zero, yearlyNet.Neg())),
	}
	if p.split != nil && p.split.StatePercent > 0 {
		state, refund := splitPayable(aggregate.Payable.Decimal, p.split.StatePercent)
		stateShare := models.NewMoney(state)
		refundShare := models.NewMoney(refund)
		aggregate.StateBudgetShare = &stateShare
		aggregate.TaxpayerRefundShare = &refundShare
	}
	report.Aggregate = aggregate

	return report, nil
}

// splitPayable divides a payable amount into state-budget and taxpayer
// shares. The smaller share is rounded half-up and the larger one is
// derived by exact subtraction, so the rounding remainder always lands on
// the larger share and the two sum back to payable without leakage.
func splitPayable(payable decimal.Decimal, statePercent int) (state, refund decimal.Decimal) {
	pct := decimal.NewFromInt(int64(statePercent))
	stateExact := payable.Mul(pct).Div(hundred)

	if statePercent <= 50 {
		state = stateExact.Round(2)
		refund = payable.Sub(state)
	} else {
		refund = payable.Sub(stateExact).Round(2)
		state = payable.Sub(refund)
	}
	return state, refund
}
