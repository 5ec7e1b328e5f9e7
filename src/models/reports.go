package models

// CounterpartyStatement is the cari (counterparty) report line: all
// activity with one VÖEN inside a batch, with the net balance from the
// taxpayer's perspective (sales to them minus purchases from them).
type CounterpartyStatement struct {
	VOEN          string `json:"voen"`
	Name          string `json:"name"`
	PurchaseTotal Money  `json:"purchase_total"`
	SaleTotal     Money  `json:"sale_total"`
	PurchaseCount int    `json:"purchase_count"`
	SaleCount     int    `json:"sale_count"`
	Balance       Money  `json:"balance"`
}

// BalanceEntry is one line of the balance report: gross turnover per
// direction, the ledger-style debit/credit view of a batch.
type BalanceEntry struct {
	Direction  Direction `json:"direction"`
	NetTotal   Money     `json:"net_total"`
	TaxTotal   Money     `json:"tax_total"`
	GrossTotal Money     `json:"gross_total"`
	Count      int       `json:"count"`
}

// BalanceReport summarizes a whole batch.
type BalanceReport struct {
	Entries     []BalanceEntry `json:"entries"`
	TotalDebit  Money          `json:"total_debit"`  // purchase side
	TotalCredit Money          `json:"total_credit"` // sale side
	NetBalance  Money          `json:"net_balance"`
}

// BatchInfo describes a stored batch of canonical records.
type BatchInfo struct {
	ID         string     `json:"id"`
	Source     string     `json:"source"`
	CreatedAt  string     `json:"created_at"`
	SkipReport SkipReport `json:"skip_report"`
}
