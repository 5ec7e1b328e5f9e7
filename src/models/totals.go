package models

// PeriodTotals holds the summed amounts for one direction inside a period.
// Empty groups are valid and carry zero totals.
type PeriodTotals struct {
	NetTotal   Money `json:"net_total"`
	TaxTotal   Money `json:"tax_total"`
	GrossTotal Money `json:"gross_total"`
	Count      int   `json:"count"`
}

// ReconciliationResult is the per-period obligation decision.
// NetObligation is signed; Payable and Refundable are its non-negative
// projections. The split shares are present only when a partial-refund
// policy is configured, and always sum back to Payable exactly.
type ReconciliationResult struct {
	Period      Period `json:"period"`
	SalesTax    Money  `json:"sales_tax"`
	PurchaseTax Money  `json:"purchase_tax"`

	NetObligation Money `json:"net_obligation"`
	Payable       Money `json:"payable"`
	Refundable    Money `json:"refundable"`

	StateBudgetShare    *Money `json:"state_budget_share,omitempty"`
	TaxpayerRefundShare *Money `json:"taxpayer_refund_share,omitempty"`
}

// YearlyReport carries the 12 monthly results plus the yearly aggregate.
// The aggregate's net obligation is the sum of the 12 monthly values; its
// sign alone decides the overall payable/refundable status. No cross-month
// netting happens inside a single month's figures.
type YearlyReport struct {
	Year      int                    `json:"year"`
	Monthly   []ReconciliationResult `json:"monthly"`
	Aggregate ReconciliationResult   `json:"aggregate"`
}

// MonthlyReport pairs a reconciliation result with the per-direction
// totals that produced it, mirroring the declaration layout.
type MonthlyReport struct {
	Year      int                        `json:"year"`
	Month     int                        `json:"month"`
	Totals    map[Direction]PeriodTotals `json:"totals"`
	Result    ReconciliationResult       `json:"result"`
}

// SkipReason categorizes why a raw row could not become a record.
type SkipReason string

const (
	SkipBadDate      SkipReason = "bad_date"
	SkipBadAmount    SkipReason = "bad_amount"
	SkipMissingField SkipReason = "missing_field"
)

// SkipReport summarizes a batch load: how many raw rows were accepted and
// how many were dropped, by reason. Skipped rows never abort the load.
type SkipReport struct {
	Loaded       int `json:"loaded"`
	BadDate      int `json:"bad_date"`
	BadAmount    int `json:"bad_amount"`
	MissingField int `json:"missing_field"`
}

func (s *SkipReport) Add(reason SkipReason) {
	switch reason {
	case SkipBadDate:
		s.BadDate++
	case SkipBadAmount:
		s.BadAmount++
	case SkipMissingField:
		s.MissingField++
	}
}

// Skipped is the total number of dropped rows.
func (s SkipReport) Skipped() int {
	return s.BadDate + s.BadAmount + s.MissingField
}
